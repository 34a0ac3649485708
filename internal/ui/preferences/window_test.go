package preferences

import (
	"testing"
	"time"

	"lapwatch/internal/core/model"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTickInterval(t *testing.T) {
	fallback := 20 * time.Millisecond

	assert.Equal(t, 25*time.Millisecond, parseTickInterval("25", fallback))
	assert.Equal(t, model.MaxTickInterval, parseTickInterval("5000", fallback))
	assert.Equal(t, fallback, parseTickInterval("0", fallback))
	assert.Equal(t, fallback, parseTickInterval("fast", fallback))
}

func TestWindowSaveClampsTick(t *testing.T) {
	app := test.NewTempApp(t)

	var saved []Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = append(saved, settings)
	})

	prefs.tick.SetText("5000")
	prefs.lapKey.SetText(" K ")
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.Equal(t, model.MaxTickInterval, saved[0].TickInterval)
	assert.Equal(t, "K", saved[0].Keymap.Lap)
	assert.Equal(t, "1000", prefs.tick.Text)
}
