package backend

import (
	"unicode"

	tea "charm.land/bubbletea/v2"

	"github.com/dshills/keyroute/internal/input/key"
)

var teaNamedKeys = map[rune]string{
	tea.KeyEscape:    key.Escape,
	tea.KeyEnter:     key.Enter,
	tea.KeyTab:       key.Tab,
	tea.KeyBackspace: key.Backspace,
	tea.KeySpace:     key.Space,
	tea.KeyDelete:    key.Delete,
	tea.KeyInsert:    key.Insert,
	tea.KeyHome:      key.Home,
	tea.KeyEnd:       key.End,
	tea.KeyPgUp:      key.PageUp,
	tea.KeyPgDown:    key.PageDown,
	tea.KeyUp:        key.ArrowUp,
	tea.KeyDown:      key.ArrowDown,
	tea.KeyLeft:      key.ArrowLeft,
	tea.KeyRight:     key.ArrowRight,
	tea.KeyF1:        "F1",
	tea.KeyF2:        "F2",
	tea.KeyF3:        "F3",
	tea.KeyF4:        "F4",
	tea.KeyF5:        "F5",
	tea.KeyF6:        "F6",
	tea.KeyF7:        "F7",
	tea.KeyF8:        "F8",
	tea.KeyF9:        "F9",
	tea.KeyF10:       "F10",
	tea.KeyF11:       "F11",
	tea.KeyF12:       "F12",
}

// FromTeaKey converts a bubbletea key press. Super and Meta both map to
// the meta modifier. It returns nil for keys with no name.
func FromTeaKey(msg tea.KeyPressMsg, target key.Target) *key.Event {
	k := msg.Key()
	ev := &key.Event{
		Meta:   k.Mod.Contains(tea.ModSuper) || k.Mod.Contains(tea.ModMeta),
		Ctrl:   k.Mod.Contains(tea.ModCtrl),
		Alt:    k.Mod.Contains(tea.ModAlt),
		Shift:  k.Mod.Contains(tea.ModShift),
		Repeat: k.IsRepeat,
		Target: target,
	}

	if name, ok := teaNamedKeys[k.Code]; ok {
		ev.Key = name
		return ev
	}
	if k.Code == 0 || !unicode.IsPrint(k.Code) {
		return nil
	}
	if unicode.IsUpper(k.Code) {
		ev.Shift = true
	}
	ev.Key = string(k.Code)
	return ev
}
