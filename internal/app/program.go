package app

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/dshills/keyroute/internal/backend"
)

// Default canvas size until the program reports the terminal size.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// interruptMsg carries a watcher payload into the bubbletea loop.
type interruptMsg struct{ data any }

// model hosts the application in a bubbletea program. Key presses are
// converted with backend.FromTeaKey and go through HandleEvent exactly as
// terminal keys do; the workspace is drawn onto a Canvas.
type model struct {
	app    *Application
	canvas *backend.Canvas
	err    error
}

func newModel(app *Application) *model {
	canvas := backend.NewCanvas(defaultWidth, defaultHeight)
	app.surface = canvas
	app.width, app.height = defaultWidth, defaultHeight
	return &model{app: app, canvas: canvas}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var ev backend.Event
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		k := backend.FromTeaKey(msg, nil)
		if k == nil {
			return m, nil
		}
		ev = backend.Event{Type: backend.EventKey, Key: k}
	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width, msg.Height)
		ev = backend.Event{Type: backend.EventResize, Width: msg.Width, Height: msg.Height}
	case interruptMsg:
		ev = backend.Event{Type: backend.EventInterrupt, Data: msg.data}
	default:
		return m, nil
	}

	if err := m.app.HandleEvent(ev); err != nil {
		if !errors.Is(err, ErrQuit) {
			m.err = err
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) View() tea.View {
	m.app.render()
	v := tea.NewView(m.canvas.String())
	v.AltScreen = true
	return v
}

// RunProgram is Run for hosts built on bubbletea: the program owns the
// terminal and the workspace is drawn as plain text. Shutdown and the
// quit shortcut stop it. By default bubbletea recovers a handler panic,
// restores the terminal and returns an error wrapping tea.ErrProgramPanic.
func (app *Application) RunProgram(opts ...tea.ProgramOption) error {
	if !app.running.CompareAndSwap(runIdle, runProgram) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(runIdle)

	m := newModel(app)
	p := tea.NewProgram(m, opts...)

	stop, err := app.watch(func(data any) { p.Send(interruptMsg{data: data}) })
	if err != nil {
		return err
	}
	defer stop()

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-app.done:
			p.Quit()
		case <-finished:
		}
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}
