package key

import (
	"strings"
	"time"
)

// Event is a single physical key-down signal.
type Event struct {
	// Key is the raw key as reported by the input source, e.g. "k", "K",
	// "Escape", "ArrowUp".
	Key string

	Meta  bool
	Ctrl  bool
	Alt   bool
	Shift bool

	// Repeat is set when the key is being held down.
	Repeat bool

	// Target is the widget the event was addressed to. May be nil.
	Target Target

	// Timestamp is when the event occurred.
	Timestamp time.Time

	defaultPrevented   bool
	propagationStopped bool
}

// NewEvent creates a key-down event with the current timestamp.
func NewEvent(name string, target Target) *Event {
	return &Event{
		Key:       name,
		Target:    target,
		Timestamp: time.Now(),
	}
}

// PreventDefault records that the default action must not run.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// StopPropagation records that no further UI layer should see the event.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// Consumed reports whether either intent has been recorded.
func (e *Event) Consumed() bool {
	return e.defaultPrevented || e.propagationStopped
}

// String returns a readable form such as "Ctrl+Shift+k (repeat)".
func (e *Event) String() string {
	if e == nil {
		return "<nil>"
	}
	var parts []string
	if e.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if e.Alt {
		parts = append(parts, "Alt")
	}
	if e.Shift {
		parts = append(parts, "Shift")
	}
	if e.Meta {
		parts = append(parts, "Meta")
	}
	parts = append(parts, e.Key)
	s := strings.Join(parts, "+")
	if e.Repeat {
		s += " (repeat)"
	}
	return s
}
