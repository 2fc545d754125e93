// Package backend adapts physical input sources to key events.
//
// Terminal drives a tcell screen and is the key-down source for the
// interactive demo. FromTeaKey converts bubbletea key presses for hosts
// built on bubbletea, which draw onto a Canvas instead. Terminals report no key-repeat flag, so Terminal
// events always have Repeat unset; bubbletea forwards the flag when the
// terminal supports the kitty keyboard protocol.
package backend

import "github.com/dshills/keyroute/internal/input/key"

// EventType identifies the type of backend event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event is a backend event.
type Event struct {
	Type EventType

	// Key is set for EventKey. Its Target is nil; the caller fills it in
	// from its own focus state.
	Key *key.Event

	// Width and Height are set for EventResize.
	Width, Height int

	// Data is the payload of EventInterrupt.
	Data any
}
