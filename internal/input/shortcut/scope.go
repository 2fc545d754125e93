package shortcut

import (
	"fmt"
	"strings"
)

// Scope is the UI region tier a shortcut belongs to.
type Scope uint8

const (
	ScopeComponent Scope = iota
	ScopeGlobal
	ScopeWorkspace
	ScopeConversation
	ScopeOverlay
)

var scopeNames = [...]string{
	ScopeComponent:    "component",
	ScopeGlobal:       "global",
	ScopeWorkspace:    "workspace",
	ScopeConversation: "conversation",
	ScopeOverlay:      "overlay",
}

// Scopes returns every scope, highest priority first.
func Scopes() []Scope {
	return []Scope{ScopeOverlay, ScopeConversation, ScopeWorkspace, ScopeGlobal, ScopeComponent}
}

// BasePriority returns the default dispatch priority of the scope.
func (s Scope) BasePriority() int {
	if !s.Valid() {
		return 0
	}
	return (int(s) + 1) * 100
}

// Valid reports whether s is one of the defined scopes.
func (s Scope) Valid() bool {
	return s <= ScopeOverlay
}

// String returns the lower-case scope name.
func (s Scope) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Scope(%d)", uint8(s))
	}
	return scopeNames[s]
}

// ParseScope parses a scope name case-insensitively.
func ParseScope(name string) (Scope, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, sn := range scopeNames {
		if sn == n {
			return Scope(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidScope, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScope, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scope) UnmarshalText(text []byte) error {
	parsed, err := ParseScope(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
