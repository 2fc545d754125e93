package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keyroute/internal/input/platform"
	"github.com/dshills/keyroute/internal/logging"
)

// Config holds keyroute settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFile receives log output. Empty means stderr, except in the
	// interactive run command, which discards logs without a file.
	LogFile string `toml:"log_file"`

	// Platform overrides host platform detection when set.
	Platform string `toml:"platform"`

	// Catalog is a TOML or YAML shortcut catalog replacing the built-in one.
	Catalog string `toml:"catalog"`

	// Watch reloads the catalog when the file changes.
	Watch bool `toml:"watch"`

	// Scripts are Lua files run at startup.
	Scripts []string `toml:"scripts"`

	Telemetry TelemetryConfig `toml:"telemetry"`
}

// TelemetryConfig configures crash reporting.
type TelemetryConfig struct {
	Enabled     bool   `toml:"enabled"`
	DSN         string `toml:"dsn"`
	Environment string `toml:"environment"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Telemetry: TelemetryConfig{
			Environment: "development",
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "keyroute", "config.toml")
}

// Load reads path over the defaults and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(path, data, &cfg); err != nil {
				return Config{}, err
			}
			cfg.expandPaths(filepath.Dir(path))
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults without consulting the
// environment.
func Parse(source string, data []byte) (Config, error) {
	cfg := Default()
	if err := decode(source, data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// Validate checks setting domains.
func (c Config) Validate() error {
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, ErrInvalidValue)
	}
	if c.Platform != "" {
		if _, ok := platform.Parse(c.Platform); !ok {
			return fmt.Errorf("platform %q: %w", c.Platform, ErrInvalidValue)
		}
	}
	if c.Telemetry.Enabled && c.Telemetry.DSN == "" {
		return fmt.Errorf("telemetry.dsn: %w: required when telemetry is enabled", ErrInvalidValue)
	}
	return nil
}

// ResolvedPlatform returns the configured platform, or the detected one.
func (c Config) ResolvedPlatform() platform.Platform {
	if p, ok := platform.Parse(c.Platform); ok {
		return p
	}
	return platform.Current()
}

// Level returns the parsed log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// expandPaths resolves "~/" and paths relative to the config file.
func (c *Config) expandPaths(base string) {
	c.LogFile = expand(c.LogFile, base)
	c.Catalog = expand(c.Catalog, base)
	for i, s := range c.Scripts {
		c.Scripts[i] = expand(s, base)
	}
}

// ExpandHome replaces a leading "~/" with the home directory. Other paths
// are returned unchanged, so relative ones stay relative to the working
// directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func expand(path, base string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~/") {
		return ExpandHome(path)
	}
	if !filepath.IsAbs(path) && base != "" && base != "." {
		return filepath.Join(base, path)
	}
	return path
}
