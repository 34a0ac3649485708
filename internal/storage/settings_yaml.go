package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lapwatch/internal/core/model"
	"lapwatch/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	TickIntervalMillis int    `yaml:"tick_interval_ms"`
	NewestFirst        *bool  `yaml:"newest_first"`
	ToggleKey          string `yaml:"toggle_key"`
	LapKey             string `yaml:"lap_key"`
	ResetKey           string `yaml:"reset_key"`
	ClearLapsKey       string `yaml:"clear_laps_key,omitempty"`
}

// SettingsPath returns the default settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from the default location.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFrom(configPath)
}

// LoadSettingsFrom reads user preferences from configPath.
func LoadSettingsFrom(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to the default location.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsTo(configPath, settings)
}

// SaveSettingsTo writes user preferences to configPath.
func SaveSettingsTo(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	newestFirst := settings.NewestFirst
	fileData := yamlSettings{
		TickIntervalMillis: int(model.ClampTickInterval(settings.TickInterval) / time.Millisecond),
		NewestFirst:        &newestFirst,
		ToggleKey:          settings.Keymap.Toggle,
		LapKey:             settings.Keymap.Lap,
		ResetKey:           settings.Keymap.Reset,
		ClearLapsKey:       settings.Keymap.ClearLaps,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.TickIntervalMillis > 0 {
		settings.TickInterval = model.ClampTickInterval(time.Duration(fileData.TickIntervalMillis) * time.Millisecond)
	}
	if fileData.NewestFirst != nil {
		settings.NewestFirst = *fileData.NewestFirst
	}
	if key := strings.TrimSpace(fileData.ToggleKey); key != "" {
		settings.Keymap.Toggle = key
	}
	if key := strings.TrimSpace(fileData.LapKey); key != "" {
		settings.Keymap.Lap = key
	}
	if key := strings.TrimSpace(fileData.ResetKey); key != "" {
		settings.Keymap.Reset = key
	}
	settings.Keymap.ClearLaps = strings.TrimSpace(fileData.ClearLapsKey)
}
