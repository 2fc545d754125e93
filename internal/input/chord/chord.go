package chord

import (
	"strings"

	"github.com/dshills/keyroute/internal/input/key"
)

// Chord is a normalized key combination: one primary key plus four
// modifier flags. Two chords match only when all five fields are equal.
type Chord struct {
	Key   string
	Meta  bool
	Ctrl  bool
	Alt   bool
	Shift bool
}

// FromEvent normalizes a live key event.
func FromEvent(ev *key.Event) Chord {
	if ev == nil {
		return Chord{}
	}
	return Chord{
		Key:   key.Canonical(ev.Key),
		Meta:  ev.Meta,
		Ctrl:  ev.Ctrl,
		Alt:   ev.Alt,
		Shift: ev.Shift,
	}
}

// Match reports strict field-wise equality.
func Match(a, b Chord) bool {
	return a == b
}

// IsZero reports whether c carries neither a key nor a modifier.
func (c Chord) IsZero() bool {
	return c == Chord{}
}

// HasKey reports whether a primary key is set.
func (c Chord) HasKey() bool {
	return c.Key != ""
}

// String returns the canonical chord string, e.g. "ctrl+shift+p". The
// result parses back to c on every platform.
func (c Chord) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	if c.Meta {
		parts = append(parts, "meta")
	}
	if c.Key != "" {
		parts = append(parts, c.Key)
	}
	// The plus key renders as "ctrl++", which Parse reads back.
	return strings.Join(parts, "+")
}
