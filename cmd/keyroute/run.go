package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/keyroute/internal/app"
	"github.com/dshills/keyroute/internal/backend"
	"github.com/dshills/keyroute/internal/config"
	"github.com/dshills/keyroute/internal/logging"
	"github.com/dshills/keyroute/internal/telemetry"
)

func newRunCmd(flags *globalFlags) *cobra.Command {
	var watch bool
	var scripts []string
	var input string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive shortcut console",
		Long: `Starts a terminal workspace driven entirely by the shortcut catalog.

Press the help shortcut to list every binding for the current platform.
With --watch the catalog file is reloaded when it changes.
With --input=tea the console runs as a bubbletea program instead of on a
tcell screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if input != inputScreen && input != inputTea {
				return fmt.Errorf("unknown input %q (want %s or %s)", input, inputScreen, inputTea)
			}
			if watch {
				cfg.Watch = true
			}
			for _, path := range scripts {
				cfg.Scripts = append(cfg.Scripts, config.ExpandHome(path))
			}
			return runConsole(cfg, input)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the catalog file when it changes")
	cmd.Flags().StringArrayVarP(&scripts, "script", "s", nil, "Lua script to run at startup (repeatable)")
	cmd.Flags().StringVar(&input, "input", inputScreen, "input host: screen or tea")
	return cmd
}

// Input hosts for the run command.
const (
	inputScreen = "screen"
	inputTea    = "tea"
)

func runConsole(cfg config.Config, input string) error {
	if err := telemetry.Init(telemetry.Options{
		Enabled:     cfg.Telemetry.Enabled,
		DSN:         cfg.Telemetry.DSN,
		Release:     version,
		Environment: cfg.Telemetry.Environment,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer telemetry.Flush()
	defer telemetry.RecoverPanic()

	logger, closeLog, err := consoleLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := app.Options{Config: cfg, Logger: logger}
	if input == inputScreen {
		term, err := backend.NewTerminal()
		if err != nil {
			return fmt.Errorf("failed to create terminal: %w", err)
		}
		opts.Screen = term
	}

	application, err := app.New(opts)
	if err != nil {
		return err
	}
	defer application.Close()
	telemetry.SetPlatform(application.Platform().String())

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		<-signals
		application.Shutdown()
	}()

	run := application.Run
	if input == inputTea {
		run = func() error { return application.RunProgram(tea.WithoutSignalHandler()) }
	}
	if err := run(); err != nil && !errors.Is(err, app.ErrQuit) {
		return err
	}
	return nil
}

// consoleLogger writes to the configured log file. Without one, logs are
// discarded so they do not corrupt the screen.
func consoleLogger(cfg config.Config) (*logging.Logger, func(), error) {
	if cfg.LogFile == "" {
		return logging.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	lc := logging.DefaultConfig()
	lc.Level = cfg.Level()
	lc.Output = f
	return logging.New(lc), func() { _ = f.Close() }, nil
}
