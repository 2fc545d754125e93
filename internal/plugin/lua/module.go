package lua

import (
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/keymap"
	"github.com/dshills/keyroute/internal/input/shortcut"
)

// ModuleName is the global the module is installed under.
const ModuleName = "keyroute"

// Module binds a State to a registry and catalog.
type Module struct {
	state    *State
	registry *keymap.Registry

	mu      sync.Mutex
	catalog *shortcut.Catalog
	handles map[keymap.Handle]string
}

// Install exposes the keyroute table in s. Registrations made by scripts
// go to reg; keyroute.bind resolves identifiers in cat.
func Install(s *State, reg *keymap.Registry, cat *shortcut.Catalog) *Module {
	m := &Module{
		state:    s,
		registry: reg,
		catalog:  cat,
		handles:  make(map[keymap.Handle]string),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	L := s.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"register":   m.register,
		"bind":       m.bind,
		"unregister": m.unregister,
		"registered": m.registered,
		"label":      m.label,
	})
	L.SetField(mod, "platform", lua.LString(reg.Platform().String()))
	L.SetGlobal(ModuleName, mod)
	return m
}

// SetCatalog replaces the catalog keyroute.bind and keyroute.label
// resolve identifiers in. Existing registrations are unaffected.
func (m *Module) SetCatalog(cat *shortcut.Catalog) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.catalog = cat
}

// lookup resolves id in the current catalog.
func (m *Module) lookup(id string) (shortcut.Definition, error) {
	m.mu.Lock()
	cat := m.catalog
	m.mu.Unlock()

	return cat.Get(id)
}

// Handles returns the live handles registered by scripts, in order.
func (m *Module) Handles() []keymap.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]keymap.Handle, 0, len(m.handles))
	for h := range m.handles {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// UnregisterAll removes every registration made by scripts and returns how
// many were live.
func (m *Module) UnregisterAll() int {
	m.mu.Lock()
	handles := m.handles
	m.handles = make(map[keymap.Handle]string)
	m.mu.Unlock()

	n := 0
	for h := range handles {
		if m.registry.Remove(h) {
			n++
		}
	}
	return n
}

// register(opts, fn) -> handle
func (m *Module) register(L *lua.LState) int {
	opts := L.CheckTable(1)
	fn := L.CheckFunction(2)

	def := shortcut.Definition{
		ID:           lua.LVAsString(opts.RawGetString("id")),
		Chord:        lua.LVAsString(opts.RawGetString("chord")),
		Description:  lua.LVAsString(opts.RawGetString("description")),
		AllowInInput: lua.LVAsBool(opts.RawGetString("allow_in_input")),
		AllowRepeat:  lua.LVAsBool(opts.RawGetString("allow_repeat")),
		Scope:        shortcut.ScopeGlobal,
	}
	if def.Chord == "" {
		L.ArgError(1, "chord is required")
		return 0
	}
	if def.ID == "" {
		def.ID = "lua:" + def.Chord
	}
	if sv := lua.LVAsString(opts.RawGetString("scope")); sv != "" {
		scope, err := shortcut.ParseScope(sv)
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		def.Scope = scope
	}
	if pv, ok := opts.RawGetString("priority").(lua.LNumber); ok {
		def.Priority = shortcut.Priority(int(pv))
	}

	reg := m.registration(def, fn, opts)
	L.Push(lua.LNumber(m.add(reg)))
	return 1
}

// bind(id, fn [, opts]) -> handle
func (m *Module) bind(L *lua.LState) int {
	id := L.CheckString(1)
	fn := L.CheckFunction(2)
	opts := L.OptTable(3, L.NewTable())

	def, err := m.lookup(id)
	if err != nil {
		L.RaiseError("bind: %v", err)
		return 0
	}

	reg := m.registration(def, fn, opts)
	L.Push(lua.LNumber(m.add(reg)))
	return 1
}

// unregister(handle) -> bool
func (m *Module) unregister(L *lua.LState) int {
	h := keymap.Handle(L.CheckNumber(1))

	m.mu.Lock()
	delete(m.handles, h)
	m.mu.Unlock()

	L.Push(lua.LBool(m.registry.Remove(h)))
	return 1
}

// registered(handle) -> bool
func (m *Module) registered(L *lua.LState) int {
	L.Push(lua.LBool(m.registry.Has(keymap.Handle(L.CheckNumber(1)))))
	return 1
}

// label(id) -> string
func (m *Module) label(L *lua.LState) int {
	def, err := m.lookup(L.CheckString(1))
	if err != nil {
		L.RaiseError("label: %v", err)
		return 0
	}
	L.Push(lua.LString(shortcut.FormatLabel(def, m.registry.Platform())))
	return 1
}

func (m *Module) registration(def shortcut.Definition, fn *lua.LFunction, opts *lua.LTable) keymap.Registration {
	reg := keymap.Registration{
		Definition:  def,
		Handler:     m.handler(def.ID, fn),
		KeepDefault: lua.LVAsBool(opts.RawGetString("keep_default")),
		Propagate:   lua.LVAsBool(opts.RawGetString("propagate")),
	}
	if when, ok := opts.RawGetString("when").(*lua.LFunction); ok {
		reg.When = m.predicate(def.ID, when)
	}
	return reg
}

func (m *Module) add(reg keymap.Registration) keymap.Handle {
	h := m.registry.Add(reg)
	m.mu.Lock()
	m.handles[h] = reg.ID
	m.mu.Unlock()
	return h
}

func (m *Module) handler(id string, fn *lua.LFunction) keymap.Handler {
	return func(ev *key.Event) keymap.Result {
		ret, err := m.state.call(fn, m.eventTable(ev))
		if err != nil {
			panic(&ScriptError{ID: id, Phase: "handler", Err: err})
		}
		if ret == lua.LFalse {
			return keymap.Declined
		}
		return keymap.Handled
	}
}

func (m *Module) predicate(id string, fn *lua.LFunction) func(*key.Event) bool {
	return func(ev *key.Event) bool {
		ret, err := m.state.call(fn, m.eventTable(ev))
		if err != nil {
			panic(&ScriptError{ID: id, Phase: "when", Err: err})
		}
		return lua.LVAsBool(ret)
	}
}

// eventTable builds the Lua view of ev.
func (m *Module) eventTable(ev *key.Event) *lua.LTable {
	t := m.state.L.NewTable()
	t.RawSetString("key", lua.LString(ev.Key))
	t.RawSetString("ctrl", lua.LBool(ev.Ctrl))
	t.RawSetString("meta", lua.LBool(ev.Meta))
	t.RawSetString("alt", lua.LBool(ev.Alt))
	t.RawSetString("shift", lua.LBool(ev.Shift))
	t.RawSetString("repeat", lua.LBool(ev.Repeat))
	t.RawSetString("role", lua.LString(roleOf(ev.Target).String()))
	t.RawSetString("editable", lua.LBool(key.IsEditable(ev.Target)))
	return t
}

func roleOf(t key.Target) key.Role {
	if t == nil {
		return key.RoleNone
	}
	return t.Role()
}
