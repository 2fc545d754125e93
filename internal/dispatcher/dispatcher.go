package dispatcher

import (
	"sync"
	"time"

	"github.com/dshills/keyroute/internal/input/chord"
	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/keymap"
	"github.com/dshills/keyroute/internal/logging"
)

// Outcome describes what Dispatch decided for one event.
type Outcome struct {
	// Chord is the normalized chord of the event.
	Chord chord.Chord

	// Handled is set when a handler consumed the event.
	Handled bool

	// Handle and ID identify the winning registration.
	Handle keymap.Handle
	ID     string

	// Matched counts registrations whose chord equals the event's.
	Matched int

	// Candidates counts registrations that passed every filter.
	Candidates int

	// Declined counts handlers that returned keymap.Declined.
	Declined int

	// RepeatDropped is set when the repeat gate discarded the event.
	RepeatDropped bool
}

// Observer is notified after each dispatch decision.
type Observer func(ev *key.Event, out Outcome)

// Dispatcher routes key events to registered handlers.
type Dispatcher struct {
	registry *keymap.Registry
	logger   *logging.Logger
	metrics  *Metrics

	mu        sync.RWMutex
	observers []Observer
}

// New creates a dispatcher over reg.
func New(reg *keymap.Registry, config Config) *Dispatcher {
	if reg == nil {
		panic(ErrNilRegistry)
	}
	d := &Dispatcher{
		registry: reg,
		logger:   config.Logger,
	}
	if d.logger == nil {
		d.logger = logging.Nop()
	}
	d.logger = d.logger.WithComponent("dispatcher")
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a dispatcher with the default configuration.
func NewWithDefaults(reg *keymap.Registry) *Dispatcher {
	return New(reg, DefaultConfig())
}

// Registry returns the registry the dispatcher reads from.
func (d *Dispatcher) Registry() *keymap.Registry {
	return d.registry
}

// Metrics returns the metrics collector, or nil if metrics are disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Observe adds an observer. Observers run in the order they were added,
// after the decision and only when Dispatch returns normally.
func (d *Dispatcher) Observe(fn Observer) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, fn)
}

// Dispatch routes ev to at most one handler. A nil event is ignored. With
// an empty registry nothing runs, but the event is still counted and
// observed as unmatched.
func (d *Dispatcher) Dispatch(ev *key.Event) Outcome {
	if ev == nil {
		return Outcome{}
	}

	start := time.Now()
	out := Outcome{Chord: chord.FromEvent(ev)}
	if d.registry.Len() == 0 {
		d.finish(ev, out, start)
		return out
	}

	matched := d.registry.Candidates(out.Chord)
	out.Matched = len(matched)

	if ev.Repeat && !anyAllowsRepeat(matched) {
		out.RepeatDropped = true
		d.finish(ev, out, start)
		return out
	}

	candidates := filter(ev, matched)
	out.Candidates = len(candidates)

	for _, c := range candidates {
		if c.Registration.Handler(ev) == keymap.Declined {
			out.Declined++
			continue
		}
		if !c.Registration.KeepDefault {
			ev.PreventDefault()
		}
		if !c.Registration.Propagate {
			ev.StopPropagation()
		}
		out.Handled = true
		out.Handle = c.Handle
		out.ID = c.Registration.ID
		break
	}

	d.finish(ev, out, start)
	return out
}

func (d *Dispatcher) finish(ev *key.Event, out Outcome, start time.Time) {
	if d.metrics != nil {
		d.metrics.Record(out, time.Since(start))
	}

	switch {
	case out.RepeatDropped:
		d.logger.Debug("%s: repeat dropped", ev)
	case out.Handled:
		d.logger.Debug("%s: handled by %s (handle %d, %d declined)", ev, out.ID, out.Handle, out.Declined)
	case out.Candidates > 0:
		d.logger.Debug("%s: all %d candidates declined", ev, out.Candidates)
	}

	d.mu.RLock()
	observers := d.observers
	d.mu.RUnlock()
	for _, fn := range observers {
		fn(ev, out)
	}
}

func anyAllowsRepeat(entries []keymap.Entry) bool {
	for _, e := range entries {
		if e.Registration.AllowRepeat {
			return true
		}
	}
	return false
}

// filter keeps the entries that may fire for ev, preserving rank order.
func filter(ev *key.Event, entries []keymap.Entry) []keymap.Entry {
	editable := key.IsEditable(ev.Target)
	out := entries[:0]
	for _, e := range entries {
		if ev.Repeat && !e.Registration.AllowRepeat {
			continue
		}
		if editable && !e.Registration.AllowInInput {
			continue
		}
		if !e.Ready(ev) {
			continue
		}
		out = append(out, e)
	}
	return out
}
