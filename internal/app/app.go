// Package app is the interactive shortcut console. It wires the catalog,
// registry and dispatcher to a terminal screen and a small workspace whose
// state the built-in shortcuts act on.
package app

import (
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyroute/internal/backend"
	"github.com/dshills/keyroute/internal/config"
	"github.com/dshills/keyroute/internal/dispatcher"
	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/keymap"
	"github.com/dshills/keyroute/internal/input/platform"
	"github.com/dshills/keyroute/internal/input/shortcut"
	"github.com/dshills/keyroute/internal/logging"
	"github.com/dshills/keyroute/internal/plugin/lua"
	"github.com/dshills/keyroute/internal/telemetry"
)

// Surface is what the application draws on. *backend.Terminal and
// *backend.Canvas implement it.
type Surface interface {
	Size() (int, int)
	Clear()
	Show()
	DrawText(x, y int, s string, style tcell.Style) int
}

// Screen is a terminal surface that is also the event source for Run.
// *backend.Terminal implements it.
type Screen interface {
	Surface
	Init() error
	Shutdown()
	PollEvent() backend.Event
	Interrupt(data any)
}

// Run modes.
const (
	runIdle int32 = iota
	runScreen
	runProgram
)

// Options configures the application.
type Options struct {
	Config config.Config

	// Logger defaults to a no-op logger.
	Logger *logging.Logger

	// Screen is required by Run only.
	Screen Screen
}

// Application owns the shortcut engine and the demo workspace.
type Application struct {
	cfg      config.Config
	logger   *logging.Logger
	screen   Screen
	surface  Surface
	platform platform.Platform

	catalog    *shortcut.Catalog
	registry   *keymap.Registry
	dispatcher *dispatcher.Dispatcher

	scripts *lua.State
	module  *lua.Module

	unbind []keymap.Unregister
	focus  key.Target
	state  State
	last   dispatcher.Outcome

	width, height int

	running   atomic.Int32
	done      chan struct{}
	closeOnce sync.Once
}

// New builds the engine from cfg: the catalog, a registry for the
// resolved platform, a dispatcher with metrics, the built-in actions and
// any configured Lua scripts.
func New(opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	app := &Application{
		cfg:      opts.Config,
		logger:   logger.WithComponent("app"),
		screen:   opts.Screen,
		platform: opts.Config.ResolvedPlatform(),
		focus:    sessionList,
		state:    newState(),
		done:     make(chan struct{}),
	}
	if opts.Screen != nil {
		app.surface = opts.Screen
	}

	catalog := shortcut.Default()
	if app.cfg.Catalog != "" {
		c, err := shortcut.LoadFile(app.cfg.Catalog)
		if err != nil {
			return nil, &InitError{Component: "catalog", Err: err}
		}
		catalog = c
	}

	app.registry = keymap.NewRegistry(
		keymap.WithPlatform(app.platform),
		keymap.WithLogger(logger),
	)
	app.dispatcher = dispatcher.New(app.registry,
		dispatcher.DefaultConfig().WithMetrics().WithLogger(logger))
	app.dispatcher.Observe(app.observe)
	app.dispatcher.Observe(telemetry.ObserveDispatch)

	app.bindCatalog(catalog)

	if len(app.cfg.Scripts) > 0 {
		app.scripts = lua.NewState(lua.WithLogger(logger))
		app.module = lua.Install(app.scripts, app.registry, catalog)
		for _, path := range app.cfg.Scripts {
			if err := app.scripts.DoFile(path); err != nil {
				app.Close()
				return nil, &InitError{Component: "script " + path, Err: err}
			}
			app.logger.Info("loaded script %s", path)
		}
	}

	return app, nil
}

// Platform returns the platform shortcuts are resolved for.
func (app *Application) Platform() platform.Platform {
	return app.platform
}

// Catalog returns the active catalog.
func (app *Application) Catalog() *shortcut.Catalog {
	return app.catalog
}

// Registry returns the live registry.
func (app *Application) Registry() *keymap.Registry {
	return app.registry
}

// Dispatcher returns the dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// State returns a copy of the workspace state.
func (app *Application) State() State {
	s := app.state
	s.Composer = append([]rune(nil), app.state.Composer...)
	return s
}

// Focus returns the focused widget.
func (app *Application) Focus() key.Target {
	return app.focus
}

// LastOutcome returns the outcome of the most recent dispatch.
func (app *Application) LastOutcome() dispatcher.Outcome {
	return app.last
}

// Run initializes the screen and processes events until quit or
// Shutdown. A panic raised by a shortcut handler propagates after the
// screen has been restored.
func (app *Application) Run() error {
	if app.screen == nil {
		return ErrNoScreen
	}
	if !app.running.CompareAndSwap(runIdle, runScreen) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(runIdle)

	if err := app.screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer app.screen.Shutdown()

	stop, err := app.watch(app.screen.Interrupt)
	if err != nil {
		return err
	}
	defer stop()

	app.width, app.height = app.screen.Size()
	app.render()

	for {
		ev := app.screen.PollEvent()
		select {
		case <-app.done:
			return nil
		default:
		}
		if err := app.HandleEvent(ev); err != nil {
			return err
		}
		app.render()
	}
}

// watch starts the catalog watcher when configured. Reloaded catalogs and
// reload errors are passed to deliver, which must hand them to the event
// loop as an EventInterrupt payload.
func (app *Application) watch(deliver func(any)) (func(), error) {
	if !app.cfg.Watch || app.cfg.Catalog == "" {
		return func() {}, nil
	}
	w, err := shortcut.Watch(app.cfg.Catalog,
		func(c *shortcut.Catalog) { deliver(c) },
		shortcut.WithErrorHandler(func(err error) {
			app.logger.Warn("catalog reload failed: %v", err)
			deliver(err)
		}),
	)
	if err != nil {
		return nil, &InitError{Component: "watcher", Err: err}
	}
	return func() { _ = w.Close() }, nil
}

// Shutdown stops a running event loop.
func (app *Application) Shutdown() {
	app.closeOnce.Do(func() {
		close(app.done)
		if app.screen != nil && app.running.Load() == runScreen {
			app.screen.Interrupt(nil)
		}
	})
}

// Close releases the Lua state and every registration, including any a
// script or caller added directly to the registry.
func (app *Application) Close() {
	if app.module != nil {
		app.module.UnregisterAll()
	}
	if app.scripts != nil {
		_ = app.scripts.Close()
	}
	app.registry.Clear()
	app.unbind = nil
}

// HandleEvent applies a single backend event. It returns ErrQuit once the
// quit shortcut has run.
func (app *Application) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		app.handleKey(ev.Key)
	case backend.EventResize:
		app.width, app.height = ev.Width, ev.Height
	case backend.EventInterrupt:
		switch data := ev.Data.(type) {
		case *shortcut.Catalog:
			app.bindCatalog(data)
			if app.module != nil {
				app.module.SetCatalog(data)
			}
			app.state.Status = "reloaded " + data.Source()
		case error:
			app.state.Status = "reload failed: " + data.Error()
		}
	}
	if app.state.Quit {
		return ErrQuit
	}
	return nil
}

func (app *Application) handleKey(ev *key.Event) {
	if ev == nil {
		return
	}
	ev.Target = app.focus
	app.dispatcher.Dispatch(ev)
	if !ev.DefaultPrevented() && app.defaultAction(ev) {
		return
	}
	if !ev.Consumed() {
		app.bell()
	}
}

// bell rings the terminal bell for a key nothing claimed, when the
// surface has one.
func (app *Application) bell() {
	if b, ok := app.surface.(interface{ Beep() }); ok {
		b.Beep()
	}
}

func (app *Application) observe(_ *key.Event, out dispatcher.Outcome) {
	app.last = out
}

// defaultAction is what a key does when no shortcut claimed it. It
// reports whether the key had an effect.
func (app *Application) defaultAction(ev *key.Event) bool {
	if app.focus != composer {
		return false
	}
	switch ev.Key {
	case key.Escape:
		app.focus = sessionList
	case key.Enter:
		app.submit()
	case key.Backspace:
		if n := len(app.state.Composer); n > 0 {
			app.state.Composer = app.state.Composer[:n-1]
		}
	case key.Space:
		app.state.Composer = append(app.state.Composer, ' ')
	default:
		r := []rune(ev.Key)
		if len(r) != 1 || ev.Ctrl || ev.Meta || ev.Alt {
			return false
		}
		app.state.Composer = append(app.state.Composer, r[0])
	}
	return true
}

func (app *Application) submit() {
	text := string(app.state.Composer)
	if text == "" {
		return
	}
	app.state.Composer = app.state.Composer[:0]
	app.state.Transcript = append(app.state.Transcript,
		"you: "+text,
		"assistant: wants to run a tool")
	app.state.Running = true
	app.state.Pending = true
	app.state.Status = "awaiting approval"
}
