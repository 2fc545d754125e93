package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	// Per-shortcut metrics
	shortcutMetrics map[string]*ShortcutMetrics

	// Global counters
	totalEvents   uint64
	repeatDropped uint64
	noMatch       uint64
	handled       uint64
	allDeclined   uint64

	// Timing
	totalDuration time.Duration
}

// ShortcutMetrics holds metrics for one shortcut identifier.
type ShortcutMetrics struct {
	ID            string
	HandledCount  uint64
	DeclinedAhead uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastHandled   time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		shortcutMetrics: make(map[string]*ShortcutMetrics),
	}
}

// Record records one dispatch outcome.
func (m *Metrics) Record(out Outcome, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalEvents++
	m.totalDuration += duration

	switch {
	case out.RepeatDropped:
		m.repeatDropped++
		return
	case out.Candidates == 0:
		m.noMatch++
		return
	case !out.Handled:
		m.allDeclined++
		return
	}

	m.handled++

	sm := m.shortcutMetrics[out.ID]
	if sm == nil {
		sm = &ShortcutMetrics{ID: out.ID}
		m.shortcutMetrics[out.ID] = sm
	}
	sm.HandledCount++
	sm.DeclinedAhead += uint64(out.Declined)
	sm.TotalDuration += duration
	sm.LastHandled = time.Now()
	if duration > sm.MaxDuration {
		sm.MaxDuration = duration
	}
}

// TotalEvents returns the number of events dispatched.
func (m *Metrics) TotalEvents() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalEvents
}

// Handled returns the number of events a handler consumed.
func (m *Metrics) Handled() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.handled
}

// ShortcutStats returns a copy of the metrics for id, or nil.
func (m *Metrics) ShortcutStats(id string) *ShortcutMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sm := m.shortcutMetrics[id]
	if sm == nil {
		return nil
	}
	c := *sm
	return &c
}

// TopShortcuts returns the n most frequently handled shortcuts.
func (m *Metrics) TopShortcuts(n int) []*ShortcutMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*ShortcutMetrics, 0, len(m.shortcutMetrics))
	for _, sm := range m.shortcutMetrics {
		c := *sm
		all = append(all, &c)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].HandledCount != all[j].HandledCount {
			return all[i].HandledCount > all[j].HandledCount
		}
		return all[i].ID < all[j].ID
	})

	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shortcutMetrics = make(map[string]*ShortcutMetrics)
	m.totalEvents = 0
	m.repeatDropped = 0
	m.noMatch = 0
	m.handled = 0
	m.allDeclined = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time copy of the global counters.
type MetricsSnapshot struct {
	TotalEvents     uint64
	RepeatDropped   uint64
	NoMatch         uint64
	Handled         uint64
	AllDeclined     uint64
	TotalDuration   time.Duration
	AverageDuration time.Duration
	ShortcutCount   int
	Timestamp       time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalEvents:   m.totalEvents,
		RepeatDropped: m.repeatDropped,
		NoMatch:       m.noMatch,
		Handled:       m.handled,
		AllDeclined:   m.allDeclined,
		TotalDuration: m.totalDuration,
		ShortcutCount: len(m.shortcutMetrics),
		Timestamp:     time.Now(),
	}

	if m.totalEvents > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.totalEvents)
	}

	return snapshot
}

// AverageDuration returns the average dispatch duration for the shortcut.
func (sm *ShortcutMetrics) AverageDuration() time.Duration {
	if sm.HandledCount == 0 {
		return 0
	}
	return sm.TotalDuration / time.Duration(sm.HandledCount)
}
