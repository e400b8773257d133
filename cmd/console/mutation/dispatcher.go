package mutation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"locker-console/cmd/console/listing"
	"locker-console/cmd/console/status"
	"locker-console/cmd/console/validation"
	"locker-console/internal/logger"
	"locker-console/eventbus"
)

// Executor sends a resolved call to the backend.
type Executor interface {
	Mutate(ctx context.Context, path string, body any) error
}

// Target is a page that accepts mutations.
type Target interface {
	Name() string
	// Prepare validates the request locally and resolves the backend call.
	Prepare(req Request) (Call, error)
	// CheckAction resolves action against the row's state table and returns the
	// state it leads to. found is false when the row is not in the current
	// snapshot or the page does not gate action.
	CheckAction(recordKey string, action status.Action) (next status.State, found bool, err error)
	Refresh(ctx context.Context)
	Notify(level listing.NoticeLevel, msg string)
}

// Handler processes one request.
type Handler func(ctx context.Context, req Request) Outcome

type Middleware func(next Handler) Handler

// AuditEvent is published after every confirmed mutation.
type AuditEvent struct {
	RequestID  string        `json:"request_id"`
	Page       string        `json:"page"`
	Kind       Kind          `json:"kind"`
	Action     status.Action `json:"action,omitempty"`
	RecordKey  string        `json:"record_key,omitempty"`
	OperatorID string        `json:"operator_id,omitempty"`
}

const auditEventType = "console.mutation.succeeded"

type Dispatcher struct {
	exec    Executor
	targets map[string]Target
	handler Handler

	bus      eventbus.EventBus
	topic    eventbus.Topic
	operator func() string

	mu        sync.Mutex
	seen      map[string]struct{}
	seenOrder []string
	seenLimit int
}

type Option func(*Dispatcher)

// WithAudit publishes confirmed mutations to topic. operator returns the
// current operator id for the event, and may be nil.
func WithAudit(bus eventbus.EventBus, topic eventbus.Topic, operator func() string) Option {
	return func(d *Dispatcher) {
		d.bus = bus
		d.topic = topic
		d.operator = operator
	}
}

// WithMiddleware wraps dispatch; the first middleware is the outermost.
func WithMiddleware(mws ...Middleware) Option {
	return func(d *Dispatcher) {
		h := d.handler
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		d.handler = h
	}
}

// WithSeenLimit bounds how many request IDs are remembered for duplicate detection.
func WithSeenLimit(n int) Option {
	return func(d *Dispatcher) { d.seenLimit = n }
}

func NewDispatcher(exec Executor, targets []Target, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		exec:      exec,
		targets:   make(map[string]Target, len(targets)),
		seen:      map[string]struct{}{},
		seenLimit: 1024,
	}
	for _, t := range targets {
		d.targets[t.Name()] = t
	}
	d.handler = d.dispatch
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Outcome {
	if req.ID == "" {
		req.ID = NewRequestID()
	}
	return d.handler(ctx, req)
}

func (d *Dispatcher) dispatch(ctx context.Context, req Request) Outcome {
	out := Outcome{RequestID: req.ID, Page: req.Page, Kind: req.Kind, Action: req.Action()}

	if d.seenID(req.ID) {
		out.Result, out.Err = Refused, fmt.Errorf("%w: %s", ErrDuplicateRequest, req.ID)
		return out
	}

	target, ok := d.targets[req.Page]
	if !ok {
		out.Result, out.Err = Refused, fmt.Errorf("%w: %s", ErrUnknownPage, req.Page)
		return out
	}

	if err := checkShape(req); err != nil {
		out.Result, out.Err = Refused, err
		return out
	}

	var next status.State
	if action := req.Action(); action != "" && req.RecordKey != "" {
		n, found, err := target.CheckAction(req.RecordKey, action)
		if found && err != nil {
			out.Result = Refused
			out.Err = fmt.Errorf("%w: %s/%s: %w", ErrActionDisabled, req.Page, req.RecordKey, err)
			target.Notify(listing.NoticeError, out.Err.Error())
			return out
		}
		next = n
	}

	call, err := target.Prepare(req)
	if err != nil {
		out.Result, out.Err = Refused, err
		if validation.Is(err) {
			target.Notify(listing.NoticeError, err.Error())
		}
		return out
	}

	// 로컬에서 거절된 요청은 id 를 소모하지 않는다.
	if !d.claim(req.ID) {
		out.Result, out.Err = Refused, fmt.Errorf("%w: %s", ErrDuplicateRequest, req.ID)
		return out
	}

	if err := d.exec.Mutate(ctx, call.Path, call.Body); err != nil {
		out.Result, out.Err = Failed, err
		target.Notify(listing.NoticeError, fmt.Sprintf("%s %s failed: %v", req.Page, label(req), err))
		return out
	}

	out.Result = Succeeded
	msg := fmt.Sprintf("%s %s succeeded", req.Page, label(req))
	if req.Kind == Transition && next != "" {
		msg += fmt.Sprintf(", %s is now %s", req.RecordKey, next)
	}
	target.Notify(listing.NoticeInfo, msg)
	target.Refresh(ctx)
	d.audit(ctx, req)
	return out
}

func checkShape(req Request) error {
	switch req.Kind {
	case Create:
	case Update, Delete:
		if req.RecordKey == "" {
			return validation.New("recordKey", "required")
		}
	case Transition:
		if req.Transition == "" {
			return validation.New("transition", "required")
		}
		if req.RecordKey == "" {
			return validation.New("recordKey", "required")
		}
	default:
		return validation.New("kind", "oneof=create update delete transition")
	}
	return nil
}

func label(req Request) string {
	if req.Kind == Transition {
		return string(req.Transition)
	}
	return string(req.Kind)
}

func (d *Dispatcher) seenID(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, dup := d.seen[id]
	return dup
}

// claim records id and reports whether it was unseen.
func (d *Dispatcher) claim(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, dup := d.seen[id]; dup {
		return false
	}
	d.seen[id] = struct{}{}
	d.seenOrder = append(d.seenOrder, id)
	if len(d.seenOrder) > d.seenLimit {
		delete(d.seen, d.seenOrder[0])
		d.seenOrder = d.seenOrder[1:]
	}
	return true
}

func (d *Dispatcher) audit(ctx context.Context, req Request) {
	if d.bus == nil {
		return
	}
	ev := AuditEvent{
		RequestID: req.ID,
		Page:      req.Page,
		Kind:      req.Kind,
		Action:    req.Action(),
		RecordKey: req.RecordKey,
	}
	if d.operator != nil {
		ev.OperatorID = d.operator()
	}
	evt, err := eventbus.NewJSONEvent(req.ID, auditEventType, ev)
	if err != nil {
		logger.WarnWithFields("audit event encode failed", logger.Fields{"request_id": req.ID, "error": err.Error()})
		return
	}

	// 감사 발행 실패가 이미 확정된 변경을 되돌리지는 않는다.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := d.bus.Publish(pctx, d.topic, evt); err != nil {
		logger.WarnWithFields("audit publish failed", logger.Fields{
			"request_id": req.ID,
			"topic":      d.topic.Base(),
			"error":      err.Error(),
		})
	}
}

// IsRefused reports whether err stopped the request before it was sent.
func IsRefused(err error) bool {
	return validation.Is(err) ||
		errors.Is(err, ErrActionDisabled) ||
		errors.Is(err, ErrDuplicateRequest) ||
		errors.Is(err, ErrUnknownPage) ||
		errors.Is(err, ErrUnsupported)
}
