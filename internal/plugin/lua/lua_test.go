package lua

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyroute/internal/dispatcher"
	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/keymap"
	"github.com/dshills/keyroute/internal/input/platform"
	"github.com/dshills/keyroute/internal/input/shortcut"
	"github.com/dshills/keyroute/internal/logging"
)

type fixture struct {
	state *State
	reg   *keymap.Registry
	disp  *dispatcher.Dispatcher
	mod   *Module
}

func newFixture(t *testing.T, opts ...StateOption) *fixture {
	t.Helper()
	reg := keymap.NewRegistry(keymap.WithPlatform(platform.Linux))
	s := NewState(opts...)
	t.Cleanup(func() { _ = s.Close() })
	return &fixture{
		state: s,
		reg:   reg,
		disp:  dispatcher.NewWithDefaults(reg),
		mod:   Install(s, reg, shortcut.Default()),
	}
}

func ctrl(k string, target key.Target) *key.Event {
	ev := key.NewEvent(k, target)
	ev.Ctrl = true
	return ev
}

func TestSandboxRemovesUnsafeGlobals(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "io", "os", "debug"} {
		assert.Equal(t, lua.LNil, s.GetGlobal(name), name)
	}
	for _, name := range []string{"string", "table", "math", "pairs"} {
		assert.NotEqual(t, lua.LNil, s.GetGlobal(name), name)
	}
}

func TestPrintGoesToLogger(t *testing.T) {
	var buf bytes.Buffer
	s := NewState(WithLogger(logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})))
	defer s.Close()

	require.NoError(t, s.DoString(`print("hello", 42)`))
	assert.Contains(t, buf.String(), "hello\t42")
	assert.Contains(t, buf.String(), "component=lua")
}

func TestDoStringError(t *testing.T) {
	s := NewState()
	defer s.Close()

	assert.Error(t, s.DoString(`error("nope")`))
	assert.Error(t, s.DoString(`this is not lua`))
}

func TestExecutionTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	start := time.Now()
	err := s.DoString(`while true do end`)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClosedState(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.True(t, s.IsClosed())
	assert.ErrorIs(t, s.DoString(`x = 1`), ErrStateClosed)
	assert.Equal(t, lua.LNil, s.GetGlobal("x"))
}

func TestRegisterAndDispatch(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.state.DoString(`
		hits = 0
		handle = keyroute.register({chord = "Ctrl+K", scope = "workspace", id = "script.palette"}, function(ev)
			hits = hits + 1
			last_key = ev.key
		end)
	`))

	out := f.disp.Dispatch(ctrl("k", nil))
	assert.True(t, out.Handled)
	assert.Equal(t, "script.palette", out.ID)
	assert.Equal(t, lua.LNumber(1), f.state.GetGlobal("hits"))
	assert.Equal(t, lua.LString("k"), f.state.GetGlobal("last_key"))

	handle := f.state.GetGlobal("handle")
	require.Equal(t, lua.LTNumber, handle.Type())
	assert.Equal(t, []keymap.Handle{keymap.Handle(handle.(lua.LNumber))}, f.mod.Handles())

	entries := f.reg.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, shortcut.ScopeWorkspace, entries[0].Registration.Scope)
	assert.Equal(t, 300, entries[0].Priority)
}

func TestReturningFalseDeclines(t *testing.T) {
	f := newFixture(t)
	fallback := 0
	f.reg.Register(keymap.Registration{
		Definition: shortcut.Definition{ID: "go.fallback", Chord: "Ctrl+K", Scope: shortcut.ScopeComponent},
		Handler: func(*key.Event) keymap.Result {
			fallback++
			return keymap.Handled
		},
	})

	require.NoError(t, f.state.DoString(`
		keyroute.register({chord = "Ctrl+K", scope = "overlay"}, function(ev) return false end)
	`))

	out := f.disp.Dispatch(ctrl("k", nil))
	assert.Equal(t, 1, out.Declined)
	assert.Equal(t, "go.fallback", out.ID)
	assert.Equal(t, 1, fallback)
}

func TestRegisterOptions(t *testing.T) {
	f := newFixture(t)
	input := &key.Widget{Kind: key.RoleTextInput}

	require.NoError(t, f.state.DoString(`
		keyroute.register({
			chord = "Ctrl+J", scope = "component", priority = 999,
			allow_in_input = true, allow_repeat = true,
			keep_default = true, propagate = true,
		}, function(ev)
			seen_role = ev.role
			seen_editable = ev.editable
			seen_repeat = ev["repeat"]
		end)
	`))

	ev := ctrl("j", input)
	ev.Repeat = true
	out := f.disp.Dispatch(ev)

	require.True(t, out.Handled)
	assert.Equal(t, "lua:Ctrl+J", out.ID)
	assert.False(t, ev.DefaultPrevented())
	assert.False(t, ev.PropagationStopped())
	assert.Equal(t, lua.LString("textinput"), f.state.GetGlobal("seen_role"))
	assert.Equal(t, lua.LTrue, f.state.GetGlobal("seen_editable"))
	assert.Equal(t, lua.LTrue, f.state.GetGlobal("seen_repeat"))
	assert.Equal(t, 999, f.reg.Entries()[0].Priority)
}

func TestWhenPredicate(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.state.DoString(`
		open = false
		keyroute.register({chord = "Ctrl+K", when = function(ev) return open end}, function() end)
	`))

	assert.False(t, f.disp.Dispatch(ctrl("k", nil)).Handled)
	require.NoError(t, f.state.DoString(`open = true`))
	assert.True(t, f.disp.Dispatch(ctrl("k", nil)).Handled)
}

func TestRegisterArgumentErrors(t *testing.T) {
	f := newFixture(t)

	assert.Error(t, f.state.DoString(`keyroute.register({scope = "global"}, function() end)`))
	assert.Error(t, f.state.DoString(`keyroute.register({chord = "x", scope = "modal"}, function() end)`))
	assert.Error(t, f.state.DoString(`keyroute.register({chord = "x"})`))
	assert.Equal(t, 0, f.reg.Len())
}

func TestBindCatalogShortcut(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.state.DoString(`
		closed = false
		keyroute.bind("overlay.close", function() closed = true end)
	`))

	out := f.disp.Dispatch(key.NewEvent("Escape", &key.Widget{Kind: key.RoleTextInput}))
	assert.True(t, out.Handled, "overlay.close allows input targets")
	assert.Equal(t, shortcut.IDOverlayClose, out.ID)
	assert.Equal(t, lua.LTrue, f.state.GetGlobal("closed"))
}

func TestBindUnknownIDRaises(t *testing.T) {
	f := newFixture(t)

	err := f.state.DoString(`keyroute.bind("does.not.exist", function() end)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown identifier")
	assert.Equal(t, 0, f.reg.Len())
}

func TestUnregister(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.state.DoString(`
		h = keyroute.register({chord = "x"}, function() end)
		live = keyroute.registered(h)
		first = keyroute.unregister(h)
		second = keyroute.unregister(h)
		gone = keyroute.registered(h)
		bogus = keyroute.unregister(424242)
	`))

	assert.Equal(t, lua.LTrue, f.state.GetGlobal("live"))
	assert.Equal(t, lua.LFalse, f.state.GetGlobal("gone"))
	assert.Equal(t, lua.LTrue, f.state.GetGlobal("first"))
	assert.Equal(t, lua.LFalse, f.state.GetGlobal("second"))
	assert.Equal(t, lua.LFalse, f.state.GetGlobal("bogus"))
	assert.Equal(t, 0, f.reg.Len())
	assert.Empty(t, f.mod.Handles())
}

func TestUnregisterInsideHandler(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.state.DoString(`
		count = 0
		local h
		h = keyroute.register({chord = "x"}, function()
			count = count + 1
			keyroute.unregister(h)
		end)
	`))

	f.disp.Dispatch(key.NewEvent("x", nil))
	f.disp.Dispatch(key.NewEvent("x", nil))
	assert.Equal(t, lua.LNumber(1), f.state.GetGlobal("count"))
}

func TestHandlerErrorPanics(t *testing.T) {
	f := newFixture(t)
	lower := 0
	f.reg.Register(keymap.Registration{
		Definition: shortcut.Definition{ID: "go.lower", Chord: "x", Scope: shortcut.ScopeComponent},
		Handler: func(*key.Event) keymap.Result {
			lower++
			return keymap.Handled
		},
	})

	require.NoError(t, f.state.DoString(`
		keyroute.register({chord = "x", id = "script.broken", scope = "overlay"}, function() error("kaboom") end)
	`))

	defer func() {
		r := recover()
		require.NotNil(t, r)
		serr, ok := r.(*ScriptError)
		require.True(t, ok, "panic value %T", r)
		assert.Equal(t, "script.broken", serr.ID)
		assert.Equal(t, "handler", serr.Phase)
		assert.Contains(t, serr.Error(), "kaboom")
		assert.Zero(t, lower)
	}()
	f.disp.Dispatch(key.NewEvent("x", nil))
	t.Fatal("dispatch should have panicked")
}

func TestUnregisterAll(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.state.DoString(`
		keyroute.register({chord = "a"}, function() end)
		keyroute.register({chord = "b"}, function() end)
		keyroute.bind("global.help", function() end)
	`))
	require.Equal(t, 3, f.reg.Len())

	assert.Equal(t, 3, f.mod.UnregisterAll())
	assert.Equal(t, 0, f.reg.Len())
	assert.Equal(t, 0, f.mod.UnregisterAll())
}

func TestLabelAndPlatform(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.state.DoString(`
		palette = keyroute.label("workspace.command-palette")
		plat = keyroute.platform
	`))
	assert.Equal(t, lua.LString("Ctrl+K"), f.state.GetGlobal("palette"))
	assert.Equal(t, lua.LString("linux"), f.state.GetGlobal("plat"))

	assert.Error(t, f.state.DoString(`keyroute.label("nope")`))
}

func TestSetCatalogRetargetsLookups(t *testing.T) {
	f := newFixture(t)
	cat, err := shortcut.New(shortcut.Definition{
		ID:    shortcut.IDWorkspaceCommandPalette,
		Chord: "Alt+P",
		Scope: shortcut.ScopeWorkspace,
	})
	require.NoError(t, err)

	f.mod.SetCatalog(cat)

	require.NoError(t, f.state.DoString(`
		palette = keyroute.label("workspace.command-palette")
		keyroute.bind("workspace.command-palette", function() opened = true end)
	`))
	assert.Equal(t, lua.LString("Alt+P"), f.state.GetGlobal("palette"))

	ev := key.NewEvent("p", nil)
	ev.Alt = true
	assert.True(t, f.disp.Dispatch(ev).Handled)
	assert.Equal(t, lua.LTrue, f.state.GetGlobal("opened"))

	err = f.state.DoString(`keyroute.label("global.help")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown identifier")
}

func TestDoFile(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "keys.lua")
	require.NoError(t, os.WriteFile(path, []byte(`keyroute.register({chord = "F5"}, function() end)`), 0o600))

	require.NoError(t, f.state.DoFile(path))
	assert.Equal(t, 1, f.reg.Len())

	err := f.state.DoFile(filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}

func TestScriptErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &ScriptError{ID: "x", Phase: "when", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "lua when for x: inner", err.Error())
}
