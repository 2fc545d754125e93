// Package chord converts shortcut strings and live key events into one
// normalized structural value so the two can be compared with plain
// equality.
//
// # Chord Strings
//
// A chord string is a "+"-separated list of tokens, matched
// case-insensitively:
//
//	"Escape"          - a bare key
//	"Ctrl+Shift+P"    - modifiers plus a key
//	"CmdOrCtrl+K"     - Meta on mac, Ctrl elsewhere
//	"Alt++"           - the "+" key itself
//
// Modifier tokens: cmd, command, meta, super, win (Meta); ctrl, control
// (Ctrl); alt, option, opt (Alt); shift (Shift); cmdOrCtrl, mod (Meta on
// mac, Ctrl otherwise). Every other token is the primary key and is
// canonicalized with key.Canonical, the same table FromEvent uses.
//
// Parsing is lenient: chord strings are authored configuration, so
// problems are reported by Inspect for tests and tooling rather than
// rejected at runtime.
package chord
