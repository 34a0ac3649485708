package display

import (
	"fmt"
	"image/color"
	"time"

	"lapwatch/internal/core/format"
	"lapwatch/internal/core/stopwatch"
	"lapwatch/internal/input"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	timeColor  = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	stateColor = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
	bestColor  = color.NRGBA{R: 46, G: 160, B: 67, A: 80}
	worstColor = color.NRGBA{R: 218, G: 54, B: 51, A: 80}
)

// Window is the main stopwatch window: time display, controls and laps.
// All methods must run on the fyne main thread.
type Window struct {
	window      fyne.Window
	stopwatch   *stopwatch.Stopwatch
	keymap      input.Keymap
	timeLabel   *canvas.Text
	stateLabel  *canvas.Text
	startButton *widget.Button
	pauseButton *widget.Button
	lapButton   *widget.Button
	resetButton *widget.Button
	clearButton *widget.Button
	lapList     *widget.List
	snapshot    stopwatch.Snapshot
	onAction    func(input.Action)
}

// New creates the stopwatch window for sw.
func New(app fyne.App, sw *stopwatch.Stopwatch, keymap input.Keymap) *Window {
	window := app.NewWindow("LapWatch")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	timeLabel := canvas.NewText(format.Clock(0), timeColor)
	timeLabel.Alignment = fyne.TextAlignCenter
	timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timeLabel.TextSize = 42

	stateLabel := canvas.NewText("", stateColor)
	stateLabel.Alignment = fyne.TextAlignCenter
	stateLabel.TextSize = 13

	display := &Window{
		window:     window,
		stopwatch:  sw,
		keymap:     keymap,
		timeLabel:  timeLabel,
		stateLabel: stateLabel,
	}

	display.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		display.dispatch(input.ActionStart)
	})
	display.startButton.Importance = widget.HighImportance
	display.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		display.dispatch(input.ActionPause)
	})
	display.lapButton = widget.NewButtonWithIcon("Lap", theme.ContentAddIcon(), func() {
		display.dispatch(input.ActionRecordLap)
	})
	display.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		display.dispatch(input.ActionReset)
	})
	display.clearButton = widget.NewButtonWithIcon("Clear laps", theme.ContentClearIcon(), func() {
		display.dispatch(input.ActionClearLaps)
	})

	display.lapList = widget.NewList(display.lapCount, newLapRow, display.updateLapRow)

	header := container.New(&clockLayout{}, timeLabel, stateLabel)
	controls := container.NewGridWithColumns(5,
		display.startButton,
		display.pauseButton,
		display.lapButton,
		display.resetButton,
		display.clearButton,
	)
	lapHeader := container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("#", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Lap", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Total", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)

	top := container.NewVBox(header, controls, widget.NewSeparator(), lapHeader)
	window.SetContent(container.NewBorder(top, nil, nil, nil, display.lapList))
	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		display.HandleKey(string(event.Name))
	})
	window.Resize(fyne.NewSize(520, 480))

	display.Refresh()
	return display
}

// Show displays the window.
func (display *Window) Show() {
	display.window.Show()
	display.window.RequestFocus()
}

// Hide hides the window.
func (display *Window) Hide() {
	display.window.Hide()
}

// SetCloseIntercept overrides the close behaviour of the window.
func (display *Window) SetCloseIntercept(handler func()) {
	display.window.SetCloseIntercept(handler)
}

// SetKeymap replaces the keyboard bindings.
func (display *Window) SetKeymap(keymap input.Keymap) {
	display.keymap = keymap
}

// SetOnAction registers a handler called after an action is applied.
func (display *Window) SetOnAction(handler func(input.Action)) {
	display.onAction = handler
}

// HandleKey applies the action bound to key.
func (display *Window) HandleKey(key string) {
	action := display.keymap.Lookup(key)
	if action == input.ActionNone {
		return
	}
	display.dispatch(action)
}

// Apply renders a stopwatch event. Ticks only redraw the time.
func (display *Window) Apply(event stopwatch.Event) {
	if event.Type == stopwatch.EventTick {
		display.setElapsed(event.Elapsed)
		return
	}
	display.Refresh()
}

// Refresh re-reads the stopwatch and redraws everything.
func (display *Window) Refresh() {
	display.snapshot = display.stopwatch.Snapshot()
	display.setElapsed(display.snapshot.Elapsed)
	display.setState(display.snapshot)
	display.lapList.Refresh()
}

func (display *Window) dispatch(action input.Action) {
	applied := input.Dispatch(display.stopwatch, action)
	display.Refresh()
	if applied != input.ActionNone && display.onAction != nil {
		display.onAction(applied)
	}
}

func (display *Window) setElapsed(elapsed time.Duration) {
	display.timeLabel.Text = format.Clock(elapsed)
	display.timeLabel.Refresh()
}

func (display *Window) setState(snapshot stopwatch.Snapshot) {
	running := snapshot.State == stopwatch.StateRunning
	if running {
		display.startButton.Disable()
		display.pauseButton.Enable()
	} else {
		display.startButton.Enable()
		display.pauseButton.Disable()
	}
	if len(snapshot.Laps) == 0 {
		display.clearButton.Disable()
	} else {
		display.clearButton.Enable()
	}

	display.stateLabel.Text = stateText(snapshot, display.keymap)
	display.stateLabel.Refresh()
}

func (display *Window) lapCount() int {
	return len(display.snapshot.Laps)
}

func (display *Window) updateLapRow(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(display.snapshot.Laps) {
		return
	}
	lap := display.snapshot.Laps[id]
	row := item.(*fyne.Container)
	background := row.Objects[0].(*canvas.Rectangle)
	columns := row.Objects[1].(*fyne.Container)

	columns.Objects[0].(*widget.Label).SetText(fmt.Sprintf("%d", lap.Number))
	columns.Objects[1].(*widget.Label).SetText(format.Clock(lap.Split))
	columns.Objects[2].(*widget.Label).SetText(format.Clock(lap.Total))

	background.FillColor = lapColor(display.snapshot.Extremes, lap)
	background.Refresh()
}

func newLapRow() fyne.CanvasObject {
	monospace := fyne.TextStyle{Monospace: true}
	columns := container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, monospace),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, monospace),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, monospace),
	)
	return container.NewStack(canvas.NewRectangle(color.Transparent), columns)
}

// lapColor tints best laps green and worst laps red. A lap that is both,
// such as a lone lap, is shown as best.
func lapColor(extremes stopwatch.Extremes, lap stopwatch.Lap) color.Color {
	switch {
	case extremes.IsBest(lap):
		return bestColor
	case extremes.IsWorst(lap):
		return worstColor
	default:
		return color.Transparent
	}
}

func stateText(snapshot stopwatch.Snapshot, keymap input.Keymap) string {
	if snapshot.State == stopwatch.StateRunning {
		return fmt.Sprintf("running · %s pause · %s lap · %s reset", keymap.Toggle, keymap.Lap, keymap.Reset)
	}
	if snapshot.Elapsed == 0 {
		return fmt.Sprintf("ready · %s start", keymap.Toggle)
	}
	return fmt.Sprintf("paused · %s resume · %s reset", keymap.Toggle, keymap.Reset)
}

// clockLayout centers the time text with the state line under it.
type clockLayout struct{}

func (layout *clockLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	clock := objects[0]
	state := objects[1]

	clockSize := clock.MinSize()
	stateSize := state.MinSize()
	pad := theme.Padding() * 2

	clock.Move(fyne.NewPos(0, pad))
	clock.Resize(fyne.NewSize(size.Width, clockSize.Height))
	state.Move(fyne.NewPos(0, pad+clockSize.Height+theme.Padding()))
	state.Resize(fyne.NewSize(size.Width, stateSize.Height))
}

func (layout *clockLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(0, 0)
	}
	clockSize := objects[0].MinSize()
	stateSize := objects[1].MinSize()

	width := clockSize.Width
	if stateSize.Width > width {
		width = stateSize.Width
	}
	pad := theme.Padding() * 2
	return fyne.NewSize(width+pad*2, clockSize.Height+stateSize.Height+theme.Padding()+pad*2)
}
