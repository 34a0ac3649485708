package main

import (
	"fmt"
	"io"
	"os"

	"lapwatch/internal/core/stopwatch"
	"lapwatch/internal/ui/terminal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(opts *options) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the stopwatch in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts, logFile)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file; the terminal is reserved for the display")
	return cmd
}

func runTUI(opts *options, logFile string) error {
	var writer io.Writer = io.Discard
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	logger, err := newLogger(opts.logLevel, writer)
	if err != nil {
		return err
	}

	settings := loadSettings(opts, logger)
	sw := stopwatch.New(settings.StopwatchConfig(), stopwatch.Options{Logger: logger})
	defer sw.Close()

	model := terminal.NewModel(sw, settings.Keymap)
	if opts.autoStart {
		sw.Start()
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("terminal ui", "error", err)
		return fmt.Errorf("run terminal ui: %w", err)
	}
	logger.Info("terminal stopwatch closed", "elapsed", sw.Elapsed())
	return nil
}
