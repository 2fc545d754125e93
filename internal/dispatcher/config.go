package dispatcher

import "github.com/dshills/keyroute/internal/logging"

// Config holds dispatcher configuration options.
type Config struct {
	// EnableMetrics enables dispatch statistics collection.
	EnableMetrics bool

	// Logger receives debug traces of each decision. Nil disables logging.
	Logger *logging.Logger
}

// DefaultConfig returns a configuration with metrics off and no logger.
func DefaultConfig() Config {
	return Config{}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithLogger returns a copy of the config with the given logger.
func (c Config) WithLogger(l *logging.Logger) Config {
	c.Logger = l
	return c
}
