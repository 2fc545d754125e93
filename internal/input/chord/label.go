package chord

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/platform"
)

var macKeyGlyphs = map[string]string{
	key.Escape:     "⎋",
	key.Enter:      "↵",
	key.Tab:        "⇥",
	key.Backspace:  "⌫",
	key.Delete:     "⌦",
	key.Space:      "Space",
	key.ArrowUp:    "↑",
	key.ArrowDown:  "↓",
	key.ArrowLeft:  "←",
	key.ArrowRight: "→",
	key.PageUp:     "⇞",
	key.PageDown:   "⇟",
	key.Home:       "↖",
	key.End:        "↘",
}

var textKeyNames = map[string]string{
	key.Escape:     "Esc",
	key.Enter:      "Enter",
	key.Backspace:  "Backspace",
	key.Delete:     "Del",
	key.Space:      "Space",
	key.ArrowUp:    "Up",
	key.ArrowDown:  "Down",
	key.ArrowLeft:  "Left",
	key.ArrowRight: "Right",
	key.PageUp:     "PgUp",
	key.PageDown:   "PgDn",
}

// FormatLabel renders c for display. Mac labels use modifier glyphs in
// ⌃⌥⇧⌘ order with no separator; other platforms spell modifiers out and
// join with "+". Labels are presentational only.
func FormatLabel(c Chord, p platform.Platform) string {
	if p.IsMac() {
		var b strings.Builder
		if c.Ctrl {
			b.WriteString("⌃")
		}
		if c.Alt {
			b.WriteString("⌥")
		}
		if c.Shift {
			b.WriteString("⇧")
		}
		if c.Meta {
			b.WriteString("⌘")
		}
		b.WriteString(displayKey(c.Key, macKeyGlyphs))
		return b.String()
	}

	var parts []string
	if c.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if c.Alt {
		parts = append(parts, "Alt")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	if c.Meta {
		if p == platform.Windows {
			parts = append(parts, "Win")
		} else {
			parts = append(parts, "Super")
		}
	}
	if c.Key != "" {
		parts = append(parts, displayKey(c.Key, textKeyNames))
	}
	return strings.Join(parts, "+")
}

func displayKey(k string, names map[string]string) string {
	if n, ok := names[k]; ok {
		return n
	}
	if utf8.RuneCountInString(k) == 1 {
		return strings.ToUpper(k)
	}
	return k
}
