package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"lapwatch/internal/core/model"
	"lapwatch/internal/storage"
	"lapwatch/internal/ui/preferences"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const appName = "LapWatch"

type options struct {
	configPath string
	logLevel   string
	tick       time.Duration
	autoStart  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "lapwatch",
		Short:        "Stopwatch with lap splits and keyboard shortcuts",
		Long:         "LapWatch measures elapsed time with centisecond resolution, records laps and highlights the best and worst split.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Settings file (default is <user config dir>/LapWatch/settings.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.DurationVar(&opts.tick, "tick", 0, "Display refresh interval between 1ms and 1s, overrides the settings file (e.g. 10ms)")
	flags.BoolVar(&opts.autoStart, "start", false, "Start the stopwatch immediately")

	cmd.AddCommand(newGUICmd(opts), newTUICmd(opts))
	return cmd
}

func newLogger(level string, writer io.Writer) (*log.Logger, error) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	return log.NewWithOptions(writer, log.Options{
		Level:           parsed,
		Prefix:          "lapwatch",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}), nil
}

// loadSettings never fails: unreadable settings fall back to defaults.
func loadSettings(opts *options, logger *log.Logger) preferences.Settings {
	var (
		settings preferences.Settings
		err      error
	)
	if opts.configPath != "" {
		settings, err = storage.LoadSettingsFrom(opts.configPath)
	} else {
		settings, err = storage.LoadSettings(appName)
	}
	if err != nil {
		logger.Warn("using default settings", "error", err)
	}

	if opts.tick > 0 {
		settings.TickInterval = model.ClampTickInterval(opts.tick)
	}
	return settings
}

func saveSettings(opts *options, settings preferences.Settings) error {
	if opts.configPath != "" {
		return storage.SaveSettingsTo(opts.configPath, settings)
	}
	return storage.SaveSettings(appName, settings)
}
