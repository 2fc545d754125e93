package shortcut

import (
	"github.com/dshills/keyroute/internal/input/chord"
	"github.com/dshills/keyroute/internal/input/platform"
)

// Definition is a declarative shortcut. It is immutable once loaded.
type Definition struct {
	// ID is the stable identifier, e.g. "conversation.cancel".
	ID string

	// Chord is the human-readable chord string, e.g. "CmdOrCtrl+K".
	Chord string

	// Scope is the UI region tier.
	Scope Scope

	// Description documents the shortcut for help screens.
	Description string

	// Category groups shortcuts for display.
	Category string

	// AllowInInput lets the shortcut fire while a text input has focus.
	AllowInInput bool

	// AllowRepeat lets the shortcut fire on key-repeat events.
	AllowRepeat bool

	// Priority overrides the scope's base priority when set.
	Priority *int
}

// ResolvedPriority returns the priority override, or the scope's base
// priority when there is none.
func (d Definition) ResolvedPriority() int {
	if d.Priority != nil {
		return *d.Priority
	}
	return d.Scope.BasePriority()
}

// ParseChord parses the chord string for p.
func (d Definition) ParseChord(p platform.Platform) chord.Chord {
	return chord.Parse(d.Chord, p)
}

// FormatLabel renders the definition's chord for display on p.
func FormatLabel(d Definition, p platform.Platform) string {
	return chord.FormatLabel(d.ParseChord(p), p)
}

// Priority returns a pointer to n, for use as a Definition.Priority
// override.
func Priority(n int) *int {
	return &n
}
