package shortcut

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed default.toml
var defaultCatalogTOML []byte

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := ParseTOML("default.toml", defaultCatalogTOML)
	if err != nil {
		panic(fmt.Sprintf("shortcut: embedded catalog: %v", err))
	}
	return c
})

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog()
}

// DefaultTOML returns the raw built-in catalog document.
func DefaultTOML() []byte {
	return bytes.Clone(defaultCatalogTOML)
}

type document struct {
	Shortcuts []rawDefinition `toml:"shortcut" yaml:"shortcuts"`
}

type rawDefinition struct {
	ID           string `toml:"id" yaml:"id"`
	Chord        string `toml:"chord" yaml:"chord"`
	Scope        string `toml:"scope" yaml:"scope"`
	Description  string `toml:"description" yaml:"description"`
	Category     string `toml:"category" yaml:"category"`
	AllowInInput bool   `toml:"allow_in_input" yaml:"allow_in_input"`
	AllowRepeat  bool   `toml:"allow_repeat" yaml:"allow_repeat"`
	Priority     *int   `toml:"priority" yaml:"priority"`
}

// LoadFile loads a catalog, choosing the decoder by file extension
// (.toml, .yaml, .yml).
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(path, data)
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseTOML decodes a TOML catalog. Unknown keys are rejected.
func ParseTOML(source string, data []byte) (*Catalog, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		perr := &ParseError{Source: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return build(source, doc)
}

// ParseYAML decodes a YAML catalog. Unknown keys are rejected.
func ParseYAML(source string, data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ParseError{Source: source, Err: err}
	}
	return build(source, doc)
}

func build(source string, doc document) (*Catalog, error) {
	defs := make([]Definition, 0, len(doc.Shortcuts))
	for i, raw := range doc.Shortcuts {
		if raw.Scope == "" {
			return nil, fmt.Errorf("%s: definition %d (%s): %w: missing", source, i, raw.ID, ErrInvalidScope)
		}
		scope, err := ParseScope(raw.Scope)
		if err != nil {
			return nil, fmt.Errorf("%s: definition %d (%s): %w", source, i, raw.ID, err)
		}
		defs = append(defs, Definition{
			ID:           strings.TrimSpace(raw.ID),
			Chord:        strings.TrimSpace(raw.Chord),
			Scope:        scope,
			Description:  raw.Description,
			Category:     raw.Category,
			AllowInInput: raw.AllowInInput,
			AllowRepeat:  raw.AllowRepeat,
			Priority:     raw.Priority,
		})
	}
	return newCatalog(source, defs)
}
