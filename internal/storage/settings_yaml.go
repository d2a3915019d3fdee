package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"timekeeper/internal/platform"
	"timekeeper/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	CountdownMinutes *int    `yaml:"countdown_minutes"`
	CountdownSeconds *int    `yaml:"countdown_seconds"`
	NoticeOpacity    float64 `yaml:"notice_opacity"`
	NoticeFullscreen bool    `yaml:"notice_fullscreen"`
	ShowNotice       *bool   `yaml:"show_notice"`
}

// DefaultPath returns the settings file location for appName.
func DefaultPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
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

// SaveSettings writes user preferences to YAML at path.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	minutes := settings.CountdownMinutes
	seconds := settings.CountdownSeconds
	showNotice := settings.ShowNotice
	fileData := yamlSettings{
		CountdownMinutes: &minutes,
		CountdownSeconds: &seconds,
		NoticeOpacity:    settings.NoticeOpacity,
		NoticeFullscreen: settings.NoticeFullscreen,
		ShowNotice:       &showNotice,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// Out-of-range countdown fields are ignored rather than clamped so that a
// typo does not silently turn into 59.
func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.CountdownMinutes != nil && *fileData.CountdownMinutes >= 0 && *fileData.CountdownMinutes <= 59 {
		settings.CountdownMinutes = *fileData.CountdownMinutes
	}
	if fileData.CountdownSeconds != nil && *fileData.CountdownSeconds >= 0 && *fileData.CountdownSeconds <= 59 {
		settings.CountdownSeconds = *fileData.CountdownSeconds
	}

	if fileData.NoticeOpacity >= 0.5 && fileData.NoticeOpacity <= 1 {
		settings.NoticeOpacity = fileData.NoticeOpacity
	}
	if fileData.ShowNotice != nil {
		settings.ShowNotice = *fileData.ShowNotice
	}
	settings.NoticeFullscreen = fileData.NoticeFullscreen
}
