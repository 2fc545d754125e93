package key

import (
	"strings"
	"unicode/utf8"
)

// Canonical key names for non-printable keys.
const (
	Escape     = "Escape"
	Enter      = "Enter"
	Tab        = "Tab"
	Space      = "Space"
	Backspace  = "Backspace"
	Delete     = "Delete"
	Insert     = "Insert"
	Home       = "Home"
	End        = "End"
	PageUp     = "PageUp"
	PageDown   = "PageDown"
	ArrowUp    = "ArrowUp"
	ArrowDown  = "ArrowDown"
	ArrowLeft  = "ArrowLeft"
	ArrowRight = "ArrowRight"
)

// nameAliases maps lower-cased names to their canonical spelling.
var nameAliases = map[string]string{
	"escape":     Escape,
	"esc":        Escape,
	"enter":      Enter,
	"return":     Enter,
	"cr":         Enter,
	"tab":        Tab,
	"space":      Space,
	"spacebar":   Space,
	"backspace":  Backspace,
	"bs":         Backspace,
	"delete":     Delete,
	"del":        Delete,
	"insert":     Insert,
	"ins":        Insert,
	"home":       Home,
	"end":        End,
	"pageup":     PageUp,
	"pgup":       PageUp,
	"pagedown":   PageDown,
	"pgdn":       PageDown,
	"up":         ArrowUp,
	"arrowup":    ArrowUp,
	"down":       ArrowDown,
	"arrowdown":  ArrowDown,
	"left":       ArrowLeft,
	"arrowleft":  ArrowLeft,
	"right":      ArrowRight,
	"arrowright": ArrowRight,
	"plus":       "+",
	"minus":      "-",
	"comma":      ",",
	"period":     ".",
	"slash":      "/",
	"f1":         "F1",
	"f2":         "F2",
	"f3":         "F3",
	"f4":         "F4",
	"f5":         "F5",
	"f6":         "F6",
	"f7":         "F7",
	"f8":         "F8",
	"f9":         "F9",
	"f10":        "F10",
	"f11":        "F11",
	"f12":        "F12",
}

// Canonical returns the canonical spelling of a raw key name.
func Canonical(name string) string {
	if name == "" {
		return ""
	}
	if utf8.RuneCountInString(name) == 1 {
		if name == " " {
			return Space
		}
		return strings.ToLower(name)
	}
	if c, ok := nameAliases[strings.ToLower(name)]; ok {
		return c
	}
	return name
}

// IsNamed reports whether name canonicalizes to a known non-printable key.
func IsNamed(name string) bool {
	c := Canonical(name)
	if utf8.RuneCountInString(c) <= 1 {
		return false
	}
	_, ok := nameAliases[strings.ToLower(c)]
	return ok
}
