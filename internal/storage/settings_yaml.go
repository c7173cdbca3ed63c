package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"studytimer/internal/platform"
	"studytimer/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	StudySeconds     *int    `yaml:"study_seconds"`
	BreakSeconds     *int    `yaml:"break_seconds"`
	Repeat           *bool   `yaml:"repeat"`
	Muted            bool    `yaml:"muted"`
	Volume           float64 `yaml:"volume"`
	IdlePauseEnabled bool    `yaml:"idle_pause_enabled"`
	IdlePauseMinutes int     `yaml:"idle_pause_minutes"`
}

// SettingsStore reads and writes preferences in a YAML file.
type SettingsStore struct {
	path string
}

// NewSettingsStore places settings.yaml in the per-user config directory.
func NewSettingsStore(appName string) (*SettingsStore, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return nil, err
	}
	return &SettingsStore{path: filepath.Join(configDir, settingsFileName)}, nil
}

// NewSettingsStoreAt uses an explicit file path.
func NewSettingsStoreAt(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Path returns the backing file path.
func (store *SettingsStore) Path() string {
	return store.path
}

// Load reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func (store *SettingsStore) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
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

// Save writes user preferences to YAML.
func (store *SettingsStore) Save(settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	studySeconds := int(settings.Study / time.Second)
	breakSeconds := int(settings.Break / time.Second)
	repeat := settings.Repeat
	fileData := yamlSettings{
		StudySeconds:     &studySeconds,
		BreakSeconds:     &breakSeconds,
		Repeat:           &repeat,
		Muted:            settings.Muted,
		Volume:           settings.Volume,
		IdlePauseEnabled: settings.IdlePauseEnabled,
		IdlePauseMinutes: int(settings.IdlePauseAfter / time.Minute),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	// Zero is a valid phase length, so only absent keys keep the defaults.
	if fileData.StudySeconds != nil && *fileData.StudySeconds >= 0 {
		settings.Study = time.Duration(*fileData.StudySeconds) * time.Second
	}
	if fileData.BreakSeconds != nil && *fileData.BreakSeconds >= 0 {
		settings.Break = time.Duration(*fileData.BreakSeconds) * time.Second
	}
	if fileData.Repeat != nil {
		settings.Repeat = *fileData.Repeat
	}
	if fileData.IdlePauseMinutes > 0 {
		settings.IdlePauseAfter = time.Duration(fileData.IdlePauseMinutes) * time.Minute
	}

	settings.Muted = fileData.Muted
	settings.Volume = preferences.ClampVolume(fileData.Volume)
	settings.IdlePauseEnabled = fileData.IdlePauseEnabled
}
