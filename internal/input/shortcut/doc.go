// Package shortcut holds the static shortcut catalog: stable identifiers
// mapped to declarative definitions (chord string, scope, behavior flags).
//
// The catalog is configuration data. It is looked up by identifier, never
// by chord, since two definitions may share a chord in different scopes.
// An unknown identifier is a programming error: Get returns
// ErrUnknownShortcut and MustGet panics.
//
// # Scopes
//
// Scopes are a closed, ordered set that doubles as the default priority
// tier when several registrations match one key press:
//
//	overlay (500) > conversation (400) > workspace (300) > global (200) > component (100)
//
// # File Format
//
// Catalogs load from TOML or YAML:
//
//	[[shortcut]]
//	id = "overlay.close"
//	chord = "Escape"
//	scope = "overlay"
//	description = "Close the topmost overlay"
//	allow_in_input = true
package shortcut
