// Package config loads keyroute settings.
//
// Settings come from three layers, later ones winning: built-in defaults,
// a TOML file, and KEYROUTE_* environment variables.
//
//	log_level = "debug"
//	platform  = "mac"
//	catalog   = "~/.config/keyroute/shortcuts.toml"
//	watch     = true
//	scripts   = ["~/.config/keyroute/init.lua"]
//
//	[telemetry]
//	enabled = true
//	dsn     = "https://key@sentry.example.com/1"
//
// A missing file is not an error; the defaults apply.
package config
