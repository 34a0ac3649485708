package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"lapwatch/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	tick        *widget.Entry
	newestFirst *widget.Check
	toggleKey   *widget.Entry
	lapKey      *widget.Entry
	resetKey    *widget.Entry
	clearKey    *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("LapWatch Settings")

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		tick:        widget.NewEntry(),
		newestFirst: widget.NewCheck("Show newest lap first", nil),
		toggleKey:   widget.NewEntry(),
		lapKey:      widget.NewEntry(),
		resetKey:    widget.NewEntry(),
		clearKey:    widget.NewEntry(),
	}
	prefs.clearKey.SetPlaceHolder("unbound")
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Refresh every"), prefs.tick, widget.NewLabel("ms")),
		prefs.newestFirst,
		widget.NewLabelWithStyle("Keyboard", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Start / pause", prefs.toggleKey),
			widget.NewFormItem("Lap", prefs.lapKey),
			widget.NewFormItem("Reset", prefs.resetKey),
			widget.NewFormItem("Clear laps", prefs.clearKey),
		),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(360, 340))

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.tick.SetText(fmt.Sprintf("%d", settings.TickInterval.Milliseconds()))
	prefs.newestFirst.SetChecked(settings.NewestFirst)
	prefs.toggleKey.SetText(settings.Keymap.Toggle)
	prefs.lapKey.SetText(settings.Keymap.Lap)
	prefs.resetKey.SetText(settings.Keymap.Reset)
	prefs.clearKey.SetText(settings.Keymap.ClearLaps)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	settings.TickInterval = parseTickInterval(prefs.tick.Text, settings.TickInterval)
	settings.NewestFirst = prefs.newestFirst.Checked
	settings.Keymap.Toggle = keyOrDefault(prefs.toggleKey.Text, settings.Keymap.Toggle)
	settings.Keymap.Lap = keyOrDefault(prefs.lapKey.Text, settings.Keymap.Lap)
	settings.Keymap.Reset = keyOrDefault(prefs.resetKey.Text, settings.Keymap.Reset)
	// Clear laps may be left unbound.
	settings.Keymap.ClearLaps = strings.TrimSpace(prefs.clearKey.Text)

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// parseTickInterval reads milliseconds and keeps fallback on bad input.
func parseTickInterval(value string, fallback time.Duration) time.Duration {
	millis, ok := parsePositiveInt(value)
	if !ok {
		return fallback
	}
	return model.ClampTickInterval(time.Duration(millis) * time.Millisecond)
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func keyOrDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
