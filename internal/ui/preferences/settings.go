package preferences

import (
	"time"

	"lapwatch/internal/core/model"
	"lapwatch/internal/input"
)

// Settings defines editable user preferences.
type Settings struct {
	TickInterval time.Duration
	NewestFirst  bool

	Keymap input.Keymap
}

// DefaultSettings returns default settings for LapWatch.
func DefaultSettings() Settings {
	return Settings{
		TickInterval: model.DefaultTickInterval,
		NewestFirst:  true,
		Keymap:       input.DefaultKeymap(),
	}
}

// StopwatchConfig converts settings to StopwatchConfig.
func (settings Settings) StopwatchConfig() model.StopwatchConfig {
	return model.StopwatchConfig{
		TickInterval: settings.TickInterval,
		NewestFirst:  settings.NewestFirst,
	}.Normalized()
}
