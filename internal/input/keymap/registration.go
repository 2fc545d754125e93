package keymap

import (
	"github.com/dshills/keyroute/internal/input/chord"
	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/shortcut"
)

// Result is a handler's verdict on an event.
type Result uint8

const (
	// Handled consumes the event and stops dispatch.
	Handled Result = iota
	// Declined passes the event to the next candidate.
	Declined
)

// String returns the result name.
func (r Result) String() string {
	if r == Declined {
		return "declined"
	}
	return "handled"
}

// Handler reacts to a matched key event.
type Handler func(ev *key.Event) Result

// Handle identifies a live registration.
type Handle uint64

// Unregister removes a registration. Calling it more than once is a no-op.
type Unregister func()

// Registration is a live binding of a definition to a handler.
type Registration struct {
	shortcut.Definition

	// Handler runs when the registration wins dispatch.
	Handler Handler

	// When is evaluated per event. A nil When always passes.
	When func(ev *key.Event) bool

	// Enabled is evaluated per event. A nil Enabled always passes.
	Enabled func() bool

	// KeepDefault leaves the event's default action alone when handled.
	KeepDefault bool

	// Propagate lets the event continue to propagate when handled.
	Propagate bool
}

// BindOption adjusts a Registration built by Registry.Bind.
type BindOption func(*Registration)

// When sets the per-event predicate.
func When(fn func(ev *key.Event) bool) BindOption {
	return func(r *Registration) {
		r.When = fn
	}
}

// EnabledWhen sets the enablement predicate.
func EnabledWhen(fn func() bool) BindOption {
	return func(r *Registration) {
		r.Enabled = fn
	}
}

// AllowDefault keeps the event's default action when handled.
func AllowDefault() BindOption {
	return func(r *Registration) {
		r.KeepDefault = true
	}
}

// AllowPropagation lets the event keep propagating when handled.
func AllowPropagation() BindOption {
	return func(r *Registration) {
		r.Propagate = true
	}
}

// WithPriority overrides the scope priority for this registration only.
func WithPriority(n int) BindOption {
	return func(r *Registration) {
		r.Priority = shortcut.Priority(n)
	}
}

// Entry is a point-in-time view of a registration.
type Entry struct {
	Handle       Handle
	Registration Registration
	Chord        chord.Chord

	// Priority is the resolved priority.
	Priority int

	// Order is the registration sequence number; later is larger.
	Order uint64
}

// Ready evaluates the registration's predicates against ev.
func (e Entry) Ready(ev *key.Event) bool {
	if e.Registration.When != nil && !e.Registration.When(ev) {
		return false
	}
	if e.Registration.Enabled != nil && !e.Registration.Enabled() {
		return false
	}
	return true
}

// outranks reports whether a sorts before b in dispatch order.
func outranks(a, b *Entry) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Order > b.Order
}
