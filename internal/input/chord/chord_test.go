package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/platform"
)

func TestParse(t *testing.T) {
	tests := []struct {
		chordText string
		p    platform.Platform
		want Chord
	}{
		{"Escape", platform.Linux, Chord{Key: key.Escape}},
		{"esc", platform.Mac, Chord{Key: key.Escape}},
		{"k", platform.Linux, Chord{Key: "k"}},
		{"K", platform.Linux, Chord{Key: "k"}},
		{"shift+a", platform.Linux, Chord{Key: "a", Shift: true}},
		{"Ctrl+Shift+P", platform.Windows, Chord{Key: "p", Ctrl: true, Shift: true}},
		{"control + alt + Delete", platform.Linux, Chord{Key: key.Delete, Ctrl: true, Alt: true}},
		{"Cmd+K", platform.Linux, Chord{Key: "k", Meta: true}},
		{"Command+Option+i", platform.Mac, Chord{Key: "i", Meta: true, Alt: true}},
		{"CmdOrCtrl+K", platform.Mac, Chord{Key: "k", Meta: true}},
		{"CmdOrCtrl+K", platform.Windows, Chord{Key: "k", Ctrl: true}},
		{"cmdorctrl+k", platform.Linux, Chord{Key: "k", Ctrl: true}},
		{"Mod+Enter", platform.Mac, Chord{Key: key.Enter, Meta: true}},
		{"Space", platform.Linux, Chord{Key: key.Space}},
		{"Ctrl++", platform.Linux, Chord{Key: "+", Ctrl: true}},
		{"+", platform.Linux, Chord{Key: "+"}},
		{"up", platform.Linux, Chord{Key: key.ArrowUp}},
		{"", platform.Linux, Chord{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.chordText, tt.p), "Parse(%q, %s)", tt.chordText, tt.p)
	}
}

func TestFromEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *key.Event
		want Chord
	}{
		{"lower letter", &key.Event{Key: "k", Meta: true}, Chord{Key: "k", Meta: true}},
		{"browser upper case with shift", &key.Event{Key: "A", Shift: true}, Chord{Key: "a", Shift: true}},
		{"escape passes through", &key.Event{Key: "Escape"}, Chord{Key: key.Escape}},
		{"enter passes through", &key.Event{Key: "Enter", Ctrl: true}, Chord{Key: key.Enter, Ctrl: true}},
		{"space character", &key.Event{Key: " "}, Chord{Key: key.Space}},
		{"unknown name unchanged", &key.Event{Key: "AudioVolumeUp"}, Chord{Key: "AudioVolumeUp"}},
		{"nil event", nil, Chord{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromEvent(tt.ev))
		})
	}
}

func TestRoundTripEquivalence(t *testing.T) {
	tests := []struct {
		chordText string
		p    platform.Platform
		ev   *key.Event
	}{
		{"CmdOrCtrl+K", platform.Mac, &key.Event{Key: "k", Meta: true}},
		{"CmdOrCtrl+K", platform.Windows, &key.Event{Key: "k", Ctrl: true}},
		{"CmdOrCtrl+K", platform.Linux, &key.Event{Key: "K", Ctrl: true}},
		{"shift+a", platform.Linux, &key.Event{Key: "A", Shift: true}},
		{"Escape", platform.Mac, &key.Event{Key: "Escape"}},
		{"esc", platform.Mac, &key.Event{Key: "Escape"}},
		{"Alt+Enter", platform.Linux, &key.Event{Key: "Enter", Alt: true}},
		{"ctrl+space", platform.Linux, &key.Event{Key: " ", Ctrl: true}},
		{"ArrowDown", platform.Linux, &key.Event{Key: "ArrowDown"}},
		{"down", platform.Linux, &key.Event{Key: "ArrowDown"}},
		{"F5", platform.Windows, &key.Event{Key: "F5"}},
		{"Ctrl+/", platform.Linux, &key.Event{Key: "/", Ctrl: true}},
	}

	for _, tt := range tests {
		parsed := Parse(tt.chordText, tt.p)
		live := FromEvent(tt.ev)
		assert.True(t, Match(parsed, live), "%q on %s: parsed %+v, live %+v", tt.chordText, tt.p, parsed, live)
	}
}

func TestMatchIsStrict(t *testing.T) {
	base := Chord{Key: "k", Ctrl: true}

	assert.True(t, Match(base, Chord{Key: "k", Ctrl: true}))
	assert.False(t, Match(base, Chord{Key: "k"}))
	assert.False(t, Match(base, Chord{Key: "k", Ctrl: true, Shift: true}))
	assert.False(t, Match(base, Chord{Key: "k", Meta: true}))
	assert.False(t, Match(base, Chord{Key: "j", Ctrl: true}))
}

func TestStringParsesBack(t *testing.T) {
	chords := []Chord{
		{Key: "k", Ctrl: true, Shift: true},
		{Key: key.Escape},
		{Key: "+", Ctrl: true},
		{Key: "+"},
		{Key: "p", Ctrl: true, Alt: true, Shift: true, Meta: true},
	}

	for _, c := range chords {
		for _, p := range []platform.Platform{platform.Linux, platform.Mac, platform.Windows} {
			assert.Equal(t, c, Parse(c.String(), p), "String() = %q", c.String())
		}
	}
	assert.Equal(t, "ctrl++", Chord{Key: "+", Ctrl: true}.String())
}

func TestInspect(t *testing.T) {
	_, diag := Inspect("Ctrl+Shift+P", platform.Linux)
	assert.True(t, diag.OK())

	_, diag = Inspect("Ctrl+Shift", platform.Linux)
	assert.True(t, diag.MissingKey)
	assert.False(t, diag.OK())

	c, diag := Inspect("Ctrl+a+b", platform.Linux)
	assert.Equal(t, "b", c.Key, "last non-modifier token wins")
	assert.Equal(t, []string{"a"}, diag.Overridden)

	c, diag = Inspect("Hyper+x", platform.Linux)
	assert.Equal(t, "x", c.Key)
	assert.Equal(t, []string{"Hyper"}, diag.Unknown)
	assert.Equal(t, []string{"Hyper"}, diag.Overridden)
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		c    Chord
		p    platform.Platform
		want string
	}{
		{Chord{Key: "k", Meta: true}, platform.Mac, "⌘K"},
		{Chord{Key: "k", Ctrl: true}, platform.Windows, "Ctrl+K"},
		{Chord{Key: "p", Ctrl: true, Shift: true, Meta: true}, platform.Mac, "⌃⇧⌘P"},
		{Chord{Key: "p", Shift: true, Meta: true}, platform.Windows, "Shift+Win+P"},
		{Chord{Key: "p", Meta: true}, platform.Linux, "Super+P"},
		{Chord{Key: key.Escape}, platform.Mac, "⎋"},
		{Chord{Key: key.Escape}, platform.Linux, "Esc"},
		{Chord{Key: key.Enter, Alt: true}, platform.Mac, "⌥↵"},
		{Chord{Key: "F5"}, platform.Linux, "F5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLabel(tt.c, tt.p))
	}
}
