package keymap

import (
	"errors"
	"sort"
	"sync"

	"github.com/dshills/keyroute/internal/input/chord"
	"github.com/dshills/keyroute/internal/input/platform"
	"github.com/dshills/keyroute/internal/input/shortcut"
	"github.com/dshills/keyroute/internal/logging"
)

// ErrNilHandler is the panic value for a registration without a handler.
var ErrNilHandler = errors.New("keymap: nil handler")

// Option configures a Registry.
type Option func(*Registry)

// WithPlatform sets the platform used to parse chord strings.
func WithPlatform(p platform.Platform) Option {
	return func(r *Registry) {
		r.platform = p
	}
}

// WithLogger sets the registry logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// Registry holds the live registrations.
type Registry struct {
	mu sync.RWMutex

	platform platform.Platform
	logger   *logging.Logger

	// seq feeds both handles and registration order.
	seq uint64

	entries map[Handle]*Entry
	byChord map[chord.Chord][]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		platform: platform.Current(),
		logger:   logging.Nop(),
		entries:  make(map[Handle]*Entry),
		byChord:  make(map[chord.Chord][]*Entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("keymap")
	return r
}

// Platform returns the platform chord strings are parsed for.
func (r *Registry) Platform() platform.Platform {
	return r.platform
}

// Register adds reg and returns its idempotent Unregister.
// It panics with ErrNilHandler when reg.Handler is nil.
func (r *Registry) Register(reg Registration) Unregister {
	h := r.Add(reg)
	var once sync.Once
	return func() {
		once.Do(func() { r.Remove(h) })
	}
}

// Bind registers handler for def with optional adjustments.
func (r *Registry) Bind(def shortcut.Definition, handler Handler, opts ...BindOption) Unregister {
	reg := Registration{Definition: def, Handler: handler}
	for _, opt := range opts {
		opt(&reg)
	}
	return r.Register(reg)
}

// Add registers reg and returns its handle.
// It panics with ErrNilHandler when reg.Handler is nil.
func (r *Registry) Add(reg Registration) Handle {
	if reg.Handler == nil {
		panic(ErrNilHandler)
	}

	c := chord.Parse(reg.Chord, r.platform)
	switch {
	case c.IsZero():
		r.logger.Warn("shortcut %s: chord %q is empty and will never match", reg.ID, reg.Chord)
	case !c.HasKey():
		r.logger.Warn("shortcut %s: chord %q has no key and will never match", reg.ID, reg.Chord)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	e := &Entry{
		Handle:       Handle(r.seq),
		Registration: reg,
		Chord:        c,
		Priority:     reg.ResolvedPriority(),
		Order:        r.seq,
	}
	r.entries[e.Handle] = e
	r.byChord[c] = append(r.byChord[c], e)

	r.logger.Debug("registered %s as %s (priority %d, handle %d)", reg.ID, c, e.Priority, e.Handle)
	return e.Handle
}

// Remove deletes the registration with handle h. It reports whether a
// registration was removed; stale handles are a no-op.
func (r *Registry) Remove(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[h]
	if !ok {
		return false
	}
	delete(r.entries, h)

	list := r.byChord[e.Chord]
	for i, x := range list {
		if x == e {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(r.byChord, e.Chord)
	} else {
		r.byChord[e.Chord] = list
	}

	r.logger.Debug("unregistered %s (handle %d)", e.Registration.ID, h)
	return true
}

// Has reports whether h is live.
func (r *Registry) Has(h Handle) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[h]
	return ok
}

// Len returns the number of live registrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Candidates returns a snapshot of the registrations whose chord matches
// c, in dispatch order. The snapshot is unaffected by later changes to the
// registry.
func (r *Registry) Candidates(c chord.Chord) []Entry {
	r.mu.RLock()
	list := r.byChord[c]
	out := make([]Entry, len(list))
	for i, e := range list {
		out[i] = *e
	}
	r.mu.RUnlock()

	sortEntries(out)
	return out
}

// Entries returns a snapshot of every registration in dispatch order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	r.mu.RUnlock()

	sortEntries(out)
	return out
}

// Clear removes every registration.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[Handle]*Entry)
	r.byChord = make(map[chord.Chord][]*Entry)
}

func sortEntries(es []Entry) {
	sort.SliceStable(es, func(i, j int) bool {
		return outranks(&es[i], &es[j])
	})
}
