package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keyroute/internal/input/platform"
	"github.com/dshills/keyroute/internal/logging"
)

func envMap(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvLogLevel, EnvLogFile, EnvPlatform, EnvCatalog, EnvWatch, EnvScripts, EnvTelemetryEnabled, EnvTelemetryDSN} {
		if v, ok := os.LookupEnv(k); ok {
			require.NoError(t, os.Unsetenv(k))
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Watch)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, logging.LevelInfo, cfg.Level())
}

func TestParse(t *testing.T) {
	cfg, err := Parse("test.toml", []byte(`
log_level = "debug"
platform = "mac"
catalog = "/etc/keyroute/keys.yaml"
watch = true
scripts = ["a.lua", "b.lua"]

[telemetry]
enabled = true
dsn = "https://k@sentry.example.com/1"
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, logging.LevelDebug, cfg.Level())
	assert.Equal(t, platform.Mac, cfg.ResolvedPlatform())
	assert.Equal(t, "/etc/keyroute/keys.yaml", cfg.Catalog)
	assert.True(t, cfg.Watch)
	assert.Equal(t, []string{"a.lua", "b.lua"}, cfg.Scripts)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "development", cfg.Telemetry.Environment, "unset keys keep defaults")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"bad level", `log_level = "loud"`, ErrInvalidValue},
		{"bad platform", `platform = "amiga"`, ErrInvalidValue},
		{"telemetry without dsn", "[telemetry]\nenabled = true\n", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("t.toml", []byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseSyntaxAndUnknownKeys(t *testing.T) {
	_, err := Parse("t.toml", []byte("log_level = \n"))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "t.toml", perr.Path)
	assert.Positive(t, perr.Line)

	_, err = Parse("t.toml", []byte(`colour = "blue"`))
	assert.True(t, errors.As(err, &perr))
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().LogLevel, cfg.LogLevel)
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog = "keys.toml"
scripts = ["init.lua", "/abs/other.lua"]
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "keys.toml"), cfg.Catalog)
	assert.Equal(t, []string{filepath.Join(dir, "init.lua"), "/abs/other.lua"}, cfg.Scripts)
}

func TestLoadEnvPathsStayRelativeToWorkingDir(t *testing.T) {
	clearEnv(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv(EnvCatalog, "mine.toml")
	t.Setenv(EnvLogFile, "~/keyroute.log")
	t.Setenv(EnvScripts, "init.lua")

	for _, exists := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "nested", "config.toml")
		if exists {
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte(`catalog = "file.toml"`), 0o600))
		}

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "mine.toml", cfg.Catalog, "config file exists: %v", exists)
		assert.Equal(t, filepath.Join(home, "keyroute.log"), cfg.LogFile)
		assert.Equal(t, []string{"init.lua"}, cfg.Scripts)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`log_level = "warn"`), 0o600))
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvPlatform, "windows")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, platform.Windows, cfg.ResolvedPlatform())
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, envMap(map[string]string{
		EnvLogLevel:         " DEBUG ",
		EnvCatalog:          "/tmp/keys.toml",
		EnvWatch:            "true",
		EnvScripts:          "a.lua" + string(os.PathListSeparator) + "b.lua",
		EnvTelemetryEnabled: "1",
		EnvTelemetryDSN:     "https://k@example.com/2",
	}))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/keys.toml", cfg.Catalog)
	assert.True(t, cfg.Watch)
	assert.Equal(t, []string{"a.lua", "b.lua"}, cfg.Scripts)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "https://k@example.com/2", cfg.Telemetry.DSN)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvBadBool(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, envMap(map[string]string{EnvWatch: "sometimes"}))
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), EnvWatch)
}

func TestResolvedPlatformFallsBack(t *testing.T) {
	cfg := Default()
	assert.Equal(t, platform.Current(), cfg.ResolvedPlatform())
}

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", expand("", "/base"))
	assert.Equal(t, filepath.Join(home, "keys.toml"), expand("~/keys.toml", "/base"))
	assert.Equal(t, filepath.Join("/base", "keys.toml"), expand("keys.toml", "/base"))
	assert.Equal(t, "keys.toml", expand("keys.toml", "."))
	assert.Equal(t, "/abs/keys.toml", expand("/abs/keys.toml", "/base"))

	assert.Equal(t, filepath.Join(home, "x.lua"), ExpandHome("~/x.lua"))
	assert.Equal(t, "x.lua", ExpandHome("x.lua"))
	assert.Equal(t, "", ExpandHome(""))
}
