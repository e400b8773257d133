// Package status declares which row actions each entity state allows.
//
// Pages ask a Machine for the enabled actions of a row instead of checking
// status fields ad hoc. The backend stays authoritative; these tables only
// decide which affordances are offered and which requests are refused locally.
package status

import (
	"errors"
	"fmt"
	"slices"
)

type State string

type Action string

const (
	ActionEdit           Action = "edit"
	ActionDelete         Action = "delete"
	ActionPublish        Action = "publish"
	ActionUnpublish      Action = "unpublish"
	ActionTakeOut        Action = "take-out"
	ActionDiscard        Action = "discard"
	ActionSendExpress    Action = "send-express"
	ActionDeliver        Action = "deliver"
	ActionConfirmArrival Action = "confirm-arrival"
)

var ErrActionNotAllowed = errors.New("action_not_allowed")

// Rule allows Action in From. An empty To means the action keeps the state.
type Rule struct {
	From   State
	Action Action
	To     State
}

type Machine struct {
	name  string
	rules []Rule
	known []Action
}

func NewMachine(name string, rules ...Rule) *Machine {
	m := &Machine{name: name, rules: rules}
	for _, r := range rules {
		if !slices.Contains(m.known, r.Action) {
			m.known = append(m.known, r.Action)
		}
	}
	return m
}

func (m *Machine) Name() string { return m.name }

// Governs reports whether the table has any rule for a. Actions it does not
// govern (e.g. create) are never gated.
func (m *Machine) Governs(a Action) bool {
	return slices.Contains(m.known, a)
}

// Actions lists the actions enabled in s, in declaration order.
func (m *Machine) Actions(s State) []Action {
	out := []Action{}
	for _, r := range m.rules {
		if r.From == s && !slices.Contains(out, r.Action) {
			out = append(out, r.Action)
		}
	}
	return out
}

// Next returns the state a leads to from s.
func (m *Machine) Next(s State, a Action) (State, error) {
	for _, r := range m.rules {
		if r.From == s && r.Action == a {
			if r.To == "" {
				return s, nil
			}
			return r.To, nil
		}
	}
	return s, fmt.Errorf("%w: %s %s from %s", ErrActionNotAllowed, m.name, a, s)
}

// RowActions is the per-row affordance view rendered by pages.
type RowActions struct {
	State    State    `json:"state"`
	Enabled  []Action `json:"enabled"`
	Disabled []Action `json:"disabled"`
}

func (m *Machine) Evaluate(s State) RowActions {
	enabled := m.Actions(s)
	disabled := []Action{}
	for _, a := range m.known {
		if !slices.Contains(enabled, a) {
			disabled = append(disabled, a)
		}
	}
	return RowActions{State: s, Enabled: enabled, Disabled: disabled}
}
