package main

import (
	"os"

	"lapwatch/internal/core/stopwatch"
	"lapwatch/internal/input"
	"lapwatch/internal/platform"
	"lapwatch/internal/ui/display"
	"lapwatch/internal/ui/preferences"
	"lapwatch/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"
)

func newGUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop stopwatch window (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}
}

func runGUI(opts *options) error {
	logger, err := newLogger(opts.logLevel, os.Stderr)
	if err != nil {
		return err
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Error("single instance", "error", err)
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	settings := loadSettings(opts, logger)
	sw := stopwatch.New(settings.StopwatchConfig(), stopwatch.Options{Logger: logger})
	defer sw.Close()

	fyneApp := app.NewWithID("com.lapwatch.app")
	fyneApp.SetIcon(theme.HistoryIcon())

	mainWindow := display.New(fyneApp, sw, settings.Keymap)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		sw.UpdateConfig(settings.StopwatchConfig())
		mainWindow.SetKeymap(settings.Keymap)
		mainWindow.Refresh()
		if err := saveSettings(opts, settings); err != nil {
			logger.Error("save settings", "error", err)
		}
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: mainWindow.Show,
			OnToggle: func() {
				input.Dispatch(sw, input.ActionToggle)
			},
			OnLap: func() {
				sw.RecordLap()
			},
			OnReset:       sw.Reset,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
		mainWindow.SetCloseIntercept(mainWindow.Hide)
	} else {
		logger.Warn("system tray unsupported on this platform")
	}

	mainWindow.SetOnAction(func(action input.Action) {
		logger.Debug("action", "name", action)
	})

	events := sw.Subscribe(64)
	go func() {
		for event := range events {
			fyne.Do(func() {
				mainWindow.Apply(event)
				if trayManager != nil {
					trayManager.SetRunning(event.State == stopwatch.StateRunning)
					trayManager.SetElapsed(event.Elapsed)
				}
			})
		}
	}()

	if opts.autoStart {
		sw.Start()
	}

	logger.Info("desktop stopwatch ready", "tick", settings.StopwatchConfig().TickInterval, "id", sw.ID())
	mainWindow.Show()
	fyneApp.Run()
	logger.Info("desktop stopwatch closed", "elapsed", sw.Elapsed())
	return nil
}
