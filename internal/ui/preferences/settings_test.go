package preferences

import (
	"testing"
	"time"

	"lapwatch/internal/core/model"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, 10*time.Millisecond, settings.TickInterval)
	assert.True(t, settings.NewestFirst)
	assert.Equal(t, "Space", settings.Keymap.Toggle)
	assert.Empty(t, settings.Keymap.ClearLaps)
}

func TestStopwatchConfigNormalizesTick(t *testing.T) {
	settings := DefaultSettings()
	settings.TickInterval = 0
	settings.NewestFirst = false

	config := settings.StopwatchConfig()
	assert.Equal(t, model.DefaultTickInterval, config.TickInterval)
	assert.False(t, config.NewestFirst)
}

func TestParsePositiveInt(t *testing.T) {
	value, ok := parsePositiveInt(" 25 ")
	assert.True(t, ok)
	assert.Equal(t, 25, value)

	_, ok = parsePositiveInt("0")
	assert.False(t, ok)
	_, ok = parsePositiveInt("fast")
	assert.False(t, ok)
}

func TestKeyOrDefault(t *testing.T) {
	assert.Equal(t, "L", keyOrDefault("  ", "L"))
	assert.Equal(t, "K", keyOrDefault(" K ", "L"))
}
