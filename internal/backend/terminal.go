package backend

import (
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/keyroute/internal/input/key"
)

// Terminal is a tcell-backed screen and key source.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a terminal on the controlling tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a simulation
// screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init initializes the screen.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Clear clears the back buffer.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

// Show flushes the back buffer to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// DrawText writes s at (x, y), clipped to the screen width, and returns
// the column after the last cell written.
func (t *Terminal) DrawText(x, y int, s string, style tcell.Style) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	if y < 0 || y >= height {
		return x
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		if x >= 0 {
			t.screen.SetContent(x, y, r, nil, style)
		}
		x += w
	}
	return x
}

// CellRune returns the rune at (x, y).
func (t *Terminal) CellRune(x, y int) rune {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, _, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return mainc
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

// PollEvent blocks for the next event. It returns EventNone once the
// screen has been shut down.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventNone}
	}
	return convertEvent(ev)
}

// Interrupt wakes PollEvent with an EventInterrupt carrying data. It is
// safe to call from any goroutine.
func (t *Terminal) Interrupt(data any) {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(data)) // best-effort; event queue may be full
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k := KeyEvent(e)
		if k == nil {
			return Event{Type: EventNone}
		}
		return Event{Type: EventKey, Key: k}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}

	default:
		return Event{Type: EventNone}
	}
}

// namedKeys maps tcell special keys to key names.
var namedKeys = map[tcell.Key]string{
	tcell.KeyEscape:     key.Escape,
	tcell.KeyEnter:      key.Enter,
	tcell.KeyTab:        key.Tab,
	tcell.KeyBackspace2: key.Backspace,
	tcell.KeyDelete:     key.Delete,
	tcell.KeyInsert:     key.Insert,
	tcell.KeyHome:       key.Home,
	tcell.KeyEnd:        key.End,
	tcell.KeyPgUp:       key.PageUp,
	tcell.KeyPgDn:       key.PageDown,
	tcell.KeyUp:         key.ArrowUp,
	tcell.KeyDown:       key.ArrowDown,
	tcell.KeyLeft:       key.ArrowLeft,
	tcell.KeyRight:      key.ArrowRight,
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// KeyEvent converts a tcell key event. It returns nil for keys with no
// name, such as bare control codes outside Ctrl+A..Ctrl+Z.
//
// tcell reports Tab, Enter and Backspace with the same codes as Ctrl+I,
// Ctrl+M and Ctrl+H; those codes are treated as the named keys.
func KeyEvent(e *tcell.EventKey) *key.Event {
	mod := e.Modifiers()
	ev := &key.Event{
		Meta:      mod&tcell.ModMeta != 0,
		Ctrl:      mod&tcell.ModCtrl != 0,
		Alt:       mod&tcell.ModAlt != 0,
		Shift:     mod&tcell.ModShift != 0,
		Timestamp: e.When(),
	}

	k := e.Key()
	switch {
	case k == tcell.KeyRune:
		r := e.Rune()
		if unicode.IsUpper(r) {
			ev.Shift = true
		}
		ev.Key = string(r)
	case k == tcell.KeyBacktab:
		ev.Key = key.Tab
		ev.Shift = true
	case k == tcell.KeyCtrlSpace:
		ev.Key = key.Space
		ev.Ctrl = true
	default:
		if name, ok := namedKeys[k]; ok {
			ev.Key = name
			break
		}
		if k == tcell.KeyBackspace {
			ev.Key = key.Backspace
			break
		}
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			ev.Key = string(rune('a' + int(k-tcell.KeyCtrlA)))
			ev.Ctrl = true
			break
		}
		return nil
	}
	return ev
}
