// Package key defines the live key event consumed by the dispatcher and the
// key-name canonicalization shared by chord parsing and event normalization.
//
// A key Event is supplied by a physical input source (a terminal backend, a
// bubbletea program, a test). The dispatcher only inspects it and records
// two intents on it: suppress the default action and stop propagation.
//
// # Key Names
//
// Key names are canonicalized through one alias table so that a chord
// written as "esc" and a live event reporting "Escape" compare equal:
//
//   - single characters are lower-cased ("A" -> "a", " " -> "Space")
//   - known names map to one spelling ("esc" -> "Escape", "up" -> "ArrowUp")
//   - any other multi-character name passes through unchanged
package key
