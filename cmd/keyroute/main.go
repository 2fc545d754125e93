// Package main is the entry point for the keyroute shortcut console.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/keyroute/internal/config"
	"github.com/dshills/keyroute/internal/input/shortcut"
	"github.com/dshills/keyroute/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errFailed signals exit code 1 after the command already reported why.
var errFailed = errors.New("failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	platform   string
	logLevel   string
	catalog    string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "keyroute",
		Short:         "keyroute - keyboard shortcut routing console",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", config.DefaultPath(), "path to configuration file")
	root.PersistentFlags().StringVar(&flags.platform, "platform", "", "resolve shortcuts for this platform (mac, windows, linux)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.catalog, "catalog", "", "shortcut catalog file (TOML or YAML)")

	root.AddCommand(
		newRunCmd(flags),
		newListCmd(flags),
		newCheckCmd(flags),
		newDefaultsCmd(),
	)
	return root
}

// load reads the config file and applies flag overrides.
func (f *globalFlags) load() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.platform != "" {
		cfg.Platform = f.platform
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.catalog != "" {
		cfg.Catalog = config.ExpandHome(f.catalog)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadCatalog returns the configured catalog or the built-in one.
func loadCatalog(cfg config.Config) (*shortcut.Catalog, error) {
	if cfg.Catalog == "" {
		return shortcut.Default(), nil
	}
	return shortcut.LoadFile(cfg.Catalog)
}

// stderrLogger logs to stderr at the configured level.
func stderrLogger(cfg config.Config) *logging.Logger {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Level()
	return logging.New(lc)
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in shortcut catalog as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(shortcut.DefaultTOML())
			return err
		},
	}
}
