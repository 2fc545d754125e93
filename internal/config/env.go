package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dshills/keyroute/internal/input/platform"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KEYROUTE_"

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel         = EnvPrefix + "LOG_LEVEL"
	EnvLogFile          = EnvPrefix + "LOG_FILE"
	EnvPlatform         = platform.EnvVar
	EnvCatalog          = EnvPrefix + "CATALOG"
	EnvWatch            = EnvPrefix + "WATCH"
	EnvScripts          = EnvPrefix + "SCRIPTS"
	EnvTelemetryEnabled = EnvPrefix + "TELEMETRY_ENABLED"
	EnvTelemetryDSN     = EnvPrefix + "TELEMETRY_DSN"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides cfg from the environment. Empty values are treated as
// set. KEYROUTE_SCRIPTS is a list separated by the OS path list separator.
// Path values get "~/" expanded; relative paths are left relative to the
// working directory.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvLogFile); ok {
		cfg.LogFile = ExpandHome(v)
	}
	if v, ok := lookup(EnvPlatform); ok {
		cfg.Platform = v
	}
	if v, ok := lookup(EnvCatalog); ok {
		cfg.Catalog = ExpandHome(v)
	}
	if v, ok := lookup(EnvWatch); ok {
		b, err := parseBool(EnvWatch, v)
		if err != nil {
			return err
		}
		cfg.Watch = b
	}
	if v, ok := lookup(EnvScripts); ok {
		cfg.Scripts = filepath.SplitList(v)
		for i, s := range cfg.Scripts {
			cfg.Scripts[i] = ExpandHome(s)
		}
	}
	if v, ok := lookup(EnvTelemetryEnabled); ok {
		b, err := parseBool(EnvTelemetryEnabled, v)
		if err != nil {
			return err
		}
		cfg.Telemetry.Enabled = b
	}
	if v, ok := lookup(EnvTelemetryDSN); ok {
		cfg.Telemetry.DSN = v
	}
	return nil
}

func parseBool(name, v string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("%s=%q: %w", name, v, ErrInvalidValue)
	}
	return b, nil
}
