// Package mutation sends create/update/delete/transition requests for a console
// page to the backend and reloads the page once the server confirms.
//
// There is no optimistic update. A confirmed mutation triggers exactly one
// reload of the owning page; a failed one leaves the page untouched.
package mutation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"locker-console/cmd/console/status"
	"locker-console/cmd/console/validation"
)

type Kind string

const (
	Create     Kind = "create"
	Update     Kind = "update"
	Delete     Kind = "delete"
	Transition Kind = "transition"
)

var (
	ErrUnknownPage      = errors.New("unknown_page")
	ErrUnsupported      = errors.New("mutation_not_supported")
	ErrActionDisabled   = errors.New("action_disabled")
	ErrDuplicateRequest = errors.New("duplicate_request")
)

// Request is one mutation. ID identifies it; a request is consumed once.
type Request struct {
	ID         string          `json:"id"`
	Page       string          `json:"page"`
	Kind       Kind            `json:"kind"`
	Transition status.Action   `json:"transition,omitempty"`
	RecordKey  string          `json:"recordKey,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

func NewRequestID() string {
	return uuid.NewString()
}

// Action is the row action the request performs, used for status gating.
// Create has none.
func (r Request) Action() status.Action {
	switch r.Kind {
	case Update:
		return status.ActionEdit
	case Delete:
		return status.ActionDelete
	case Transition:
		return r.Transition
	}
	return ""
}

type Result string

const (
	Succeeded Result = "succeeded"
	Failed    Result = "failed"
	// Refused means the request was stopped locally and never sent.
	Refused Result = "refused"
)

type Outcome struct {
	RequestID string
	Page      string
	Kind      Kind
	Action    status.Action
	Result    Result
	Err       error
}

func (o Outcome) OK() bool { return o.Result == Succeeded }

// Call is the backend request a page resolves a mutation to.
type Call struct {
	Path string
	Body any
}

// DecodePayload decodes raw into T and runs its validate tags.
func DecodePayload[T any](raw json.RawMessage) (T, error) {
	var out T
	if len(raw) == 0 || strings.TrimSpace(string(raw)) == "null" {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, validation.New("payload", fmt.Sprintf("malformed: %v", err))
	}
	if err := validation.Struct(out); err != nil {
		return out, err
	}
	return out, nil
}
