package lua

import (
	"errors"
	"fmt"
)

// ErrStateClosed is returned when operating on a closed state.
var ErrStateClosed = errors.New("lua state is closed")

// ScriptError is the panic value of a Lua handler that raised an error.
type ScriptError struct {
	// ID is the shortcut identifier the handler was registered for.
	ID string

	// Phase is "handler" or "when".
	Phase string

	Err error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("lua %s for %s: %v", e.Phase, e.ID, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// ShortcutID returns the shortcut the failing script was bound to.
func (e *ScriptError) ShortcutID() string {
	return e.ID
}
