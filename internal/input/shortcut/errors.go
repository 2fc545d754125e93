package shortcut

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/keyroute/internal/input/chord"
)

// Catalog errors.
var (
	// ErrUnknownShortcut indicates a lookup of an identifier the catalog
	// does not contain.
	ErrUnknownShortcut = errors.New("shortcut: unknown identifier")

	// ErrInvalidScope indicates a scope name outside the fixed set.
	ErrInvalidScope = errors.New("shortcut: invalid scope")

	// ErrDuplicateID indicates two definitions with the same identifier.
	ErrDuplicateID = errors.New("shortcut: duplicate identifier")

	// ErrEmptyID indicates a definition without an identifier.
	ErrEmptyID = errors.New("shortcut: empty identifier")

	// ErrEmptyChord indicates a definition without a chord string.
	ErrEmptyChord = errors.New("shortcut: empty chord")

	// ErrUnsupportedFormat indicates a catalog file extension with no loader.
	ErrUnsupportedFormat = errors.New("shortcut: unsupported catalog format")
)

// ParseError describes a catalog document that could not be decoded.
type ParseError struct {
	Source string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %v", e.Source, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a definition whose chord string is malformed.
type ValidationError struct {
	ID          string
	Chord       string
	Diagnostics chord.Diagnostics
}

func (e *ValidationError) Error() string {
	var problems []string
	if e.Diagnostics.MissingKey {
		problems = append(problems, "no primary key")
	}
	if len(e.Diagnostics.Overridden) > 0 {
		problems = append(problems, "extra keys "+strings.Join(e.Diagnostics.Overridden, ", "))
	}
	if len(e.Diagnostics.Unknown) > 0 {
		problems = append(problems, "unknown tokens "+strings.Join(e.Diagnostics.Unknown, ", "))
	}
	return fmt.Sprintf("shortcut %s: chord %q: %s", e.ID, e.Chord, strings.Join(problems, "; "))
}
