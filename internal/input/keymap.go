// Package input maps keyboard and menu input to stopwatch actions.
package input

import (
	"errors"
	"fmt"
	"strings"

	"lapwatch/internal/core/stopwatch"
)

// ErrUnknownAction indicates an action name that is not recognised.
var ErrUnknownAction = errors.New("unknown action")

// Action is a discrete stopwatch command.
type Action string

const (
	ActionNone      Action = ""
	ActionStart     Action = "start"
	ActionPause     Action = "pause"
	ActionToggle    Action = "toggle"
	ActionReset     Action = "reset"
	ActionRecordLap Action = "recordLap"
	ActionClearLaps Action = "clearLaps"
)

// ParseAction converts a name to an Action. Matching ignores case.
func ParseAction(name string) (Action, error) {
	for _, action := range []Action{ActionStart, ActionPause, ActionToggle, ActionReset, ActionRecordLap, ActionClearLaps} {
		if strings.EqualFold(name, string(action)) {
			return action, nil
		}
	}
	return ActionNone, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Keymap binds key names to actions. An empty binding is disabled.
type Keymap struct {
	Toggle    string
	Lap       string
	Reset     string
	ClearLaps string
}

// DefaultKeymap returns Space to start/pause, L for lap and R for reset.
func DefaultKeymap() Keymap {
	return Keymap{
		Toggle: "Space",
		Lap:    "L",
		Reset:  "R",
	}
}

// Lookup returns the action bound to key, or ActionNone.
func (keymap Keymap) Lookup(key string) Action {
	key = normalizeKey(key)
	if key == "" {
		return ActionNone
	}
	switch key {
	case normalizeKey(keymap.Toggle):
		return ActionToggle
	case normalizeKey(keymap.Lap):
		return ActionRecordLap
	case normalizeKey(keymap.Reset):
		return ActionReset
	case normalizeKey(keymap.ClearLaps):
		return ActionClearLaps
	}
	return ActionNone
}

// Resolve turns a toggle into start or pause for the given running state.
func Resolve(action Action, running bool) Action {
	if action != ActionToggle {
		return action
	}
	if running {
		return ActionPause
	}
	return ActionStart
}

// Controller is the set of operations input can drive.
type Controller interface {
	Start()
	Pause()
	Reset()
	RecordLap() stopwatch.Lap
	ClearLaps()
	Running() bool
}

// Dispatch applies action to controller and returns the action applied.
func Dispatch(controller Controller, action Action) Action {
	action = Resolve(action, controller.Running())
	switch action {
	case ActionStart:
		controller.Start()
	case ActionPause:
		controller.Pause()
	case ActionReset:
		controller.Reset()
	case ActionRecordLap:
		controller.RecordLap()
	case ActionClearLaps:
		controller.ClearLaps()
	default:
		return ActionNone
	}
	return action
}

// DispatchKey looks up key and dispatches the bound action.
func (keymap Keymap) DispatchKey(controller Controller, key string) Action {
	action := keymap.Lookup(key)
	if action == ActionNone {
		return ActionNone
	}
	return Dispatch(controller, action)
}

func normalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	return strings.ToLower(strings.TrimSpace(key))
}
