package tray

import (
	"fmt"
	"time"

	"lapwatch/internal/core/format"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnLap         func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	lapItem    *fyne.MenuItem
	running    bool
	status     string
}

// New creates a tray manager with the provided callbacks.
// A nil app is accepted so the manager can be driven without a tray.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		status:    format.Coarse(0),
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnToggle))
	manager.lapItem = fyne.NewMenuItem("Lap", invoke(&manager.callbacks.OnLap))

	manager.refresh()
	return manager
}

// SetElapsed updates the status line. The menu is only rebuilt when the
// whole-second text changes.
func (manager *Manager) SetElapsed(elapsed time.Duration) {
	status := format.Coarse(elapsed)
	if status == manager.status {
		return
	}
	manager.status = status
	manager.refresh()
}

// SetRunning updates the start/pause item.
func (manager *Manager) SetRunning(running bool) {
	if running == manager.running {
		return
	}
	manager.running = running
	manager.refresh()
}

// StatusLabel returns the current status line.
func (manager *Manager) StatusLabel() string {
	return manager.statusItem.Label
}

// ToggleLabel returns the current start/pause label.
func (manager *Manager) ToggleLabel() string {
	return manager.toggleItem.Label
}

func (manager *Manager) refresh() {
	state := "paused"
	manager.toggleItem.Label = "Start"
	if manager.running {
		state = "running"
		manager.toggleItem.Label = "Pause"
	}
	manager.statusItem.Label = fmt.Sprintf("%s (%s)", manager.status, state)

	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("LapWatch",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.lapItem,
		fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	))
}

func invoke(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}
