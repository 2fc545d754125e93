package chord

import (
	"strings"

	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/platform"
)

type modifier uint8

const (
	modNone modifier = iota
	modMeta
	modCtrl
	modAlt
	modShift
	modPrimary // Meta on mac, Ctrl elsewhere
)

// modifierNames maps lower-cased modifier tokens to modifiers.
var modifierNames = map[string]modifier{
	"cmd":              modMeta,
	"command":          modMeta,
	"meta":             modMeta,
	"super":            modMeta,
	"win":              modMeta,
	"ctrl":             modCtrl,
	"control":          modCtrl,
	"alt":              modAlt,
	"option":           modAlt,
	"opt":              modAlt,
	"shift":            modShift,
	"cmdorctrl":        modPrimary,
	"commandorcontrol": modPrimary,
	"mod":              modPrimary,
}

// Diagnostics describes what a lenient parse glossed over.
type Diagnostics struct {
	// MissingKey is set when no primary key token was found.
	MissingKey bool

	// Overridden lists primary key tokens replaced by a later one.
	Overridden []string

	// Unknown lists multi-character key tokens that are not known names.
	// They are kept verbatim as the primary key.
	Unknown []string
}

// OK reports whether the chord string was well formed.
func (d Diagnostics) OK() bool {
	return !d.MissingKey && len(d.Overridden) == 0 && len(d.Unknown) == 0
}

// Parse converts a chord string into a Chord for the given platform.
// Malformed input degrades silently; use Inspect to see what was dropped.
func Parse(text string, p platform.Platform) Chord {
	c, _ := Inspect(text, p)
	return c
}

// Inspect parses like Parse and also reports problems with the input.
func Inspect(text string, p platform.Platform) (Chord, Diagnostics) {
	var c Chord
	var diag Diagnostics

	tokens, plusKey := tokenize(text)
	for _, tok := range tokens {
		mod, isMod := modifierNames[strings.ToLower(tok)]
		if !isMod {
			if c.Key != "" {
				diag.Overridden = append(diag.Overridden, c.Key)
			}
			c.Key = key.Canonical(tok)
			if len([]rune(tok)) > 1 && !key.IsNamed(tok) {
				diag.Unknown = append(diag.Unknown, tok)
			}
			continue
		}
		switch mod {
		case modMeta:
			c.Meta = true
		case modCtrl:
			c.Ctrl = true
		case modAlt:
			c.Alt = true
		case modShift:
			c.Shift = true
		case modPrimary:
			if p.IsMac() {
				c.Meta = true
			} else {
				c.Ctrl = true
			}
		}
	}

	if plusKey {
		if c.Key != "" {
			diag.Overridden = append(diag.Overridden, c.Key)
		}
		c.Key = "+"
	}
	diag.MissingKey = c.Key == ""
	return c, diag
}

// tokenize splits on "+" and trims tokens. A trailing "++" (or a bare "+")
// names the plus key and is reported separately.
func tokenize(text string) ([]string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}
	if text == "+" {
		return nil, true
	}

	plusKey := false
	if strings.HasSuffix(text, "++") {
		plusKey = true
		text = strings.TrimSuffix(text, "++")
	}

	raw := strings.Split(text, "+")
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens, plusKey
}
