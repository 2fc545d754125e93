package shortcut

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/keyroute/internal/input/chord"
	"github.com/dshills/keyroute/internal/input/platform"
)

// Catalog is an immutable set of definitions keyed by identifier.
type Catalog struct {
	defs   map[string]Definition
	source string
}

// New builds a catalog from defs. Identifiers must be unique and non-empty
// and every definition needs a chord string.
func New(defs ...Definition) (*Catalog, error) {
	return newCatalog("inline", defs)
}

func newCatalog(source string, defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs:   make(map[string]Definition, len(defs)),
		source: source,
	}
	for i, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("%s: definition %d: %w", source, i, ErrEmptyID)
		}
		if _, dup := c.defs[d.ID]; dup {
			return nil, fmt.Errorf("%s: %w: %s", source, ErrDuplicateID, d.ID)
		}
		if d.Chord == "" {
			return nil, fmt.Errorf("%s: %s: %w", source, d.ID, ErrEmptyChord)
		}
		if !d.Scope.Valid() {
			return nil, fmt.Errorf("%s: %s: %w: %s", source, d.ID, ErrInvalidScope, d.Scope)
		}
		c.defs[d.ID] = d
	}
	return c, nil
}

// Source names where the catalog was loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Has reports whether id is defined.
func (c *Catalog) Has(id string) bool {
	_, ok := c.defs[id]
	return ok
}

// Get returns the definition for id. An unknown id yields an error
// wrapping ErrUnknownShortcut.
func (c *Catalog) Get(id string) (Definition, error) {
	d, ok := c.defs[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownShortcut, id)
	}
	return d, nil
}

// MustGet is like Get but panics on an unknown id.
func (c *Catalog) MustGet(id string) Definition {
	d, err := c.Get(id)
	if err != nil {
		panic(err)
	}
	return d
}

// All returns every definition ordered by resolved priority, highest
// first, then by identifier.
func (c *Catalog) All() []Definition {
	out := make([]Definition, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].ResolvedPriority(), out[j].ResolvedPriority()
		if pi != pj {
			return pi > pj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// IDs returns every identifier in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.defs))
	for id := range c.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// InScope returns the definitions of one scope, ordered like All.
func (c *Catalog) InScope(s Scope) []Definition {
	var out []Definition
	for _, d := range c.All() {
		if d.Scope == s {
			out = append(out, d)
		}
	}
	return out
}

// Validate parses every chord string for p and reports malformed ones.
// The returned error joins one *ValidationError per bad definition.
func (c *Catalog) Validate(p platform.Platform) error {
	var errs []error
	for _, id := range c.IDs() {
		d := c.defs[id]
		_, diag := chord.Inspect(d.Chord, p)
		if !diag.OK() {
			errs = append(errs, &ValidationError{ID: d.ID, Chord: d.Chord, Diagnostics: diag})
		}
	}
	return errors.Join(errs...)
}

// Conflict is a set of definitions that parse to the same chord at the
// same resolved priority. At dispatch time the most recent registration
// among them wins.
type Conflict struct {
	Chord    chord.Chord
	Priority int
	IDs      []string
}

// Conflicts returns the ambiguous chords of the catalog on p, ordered by
// chord label. Definitions whose chord has no key are ignored.
func (c *Catalog) Conflicts(p platform.Platform) []Conflict {
	type slot struct {
		chord    chord.Chord
		priority int
	}
	groups := make(map[slot][]string)
	for _, id := range c.IDs() {
		d := c.defs[id]
		ch := d.ParseChord(p)
		if !ch.HasKey() {
			continue
		}
		s := slot{chord: ch, priority: d.ResolvedPriority()}
		groups[s] = append(groups[s], id)
	}

	var out []Conflict
	for s, ids := range groups {
		if len(ids) > 1 {
			out = append(out, Conflict{Chord: s.chord, Priority: s.priority, IDs: ids})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if a, b := out[i].Chord.String(), out[j].Chord.String(); a != b {
			return a < b
		}
		return out[i].Priority > out[j].Priority
	})
	return out
}
