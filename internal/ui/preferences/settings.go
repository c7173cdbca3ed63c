package preferences

import (
	"time"

	"studytimer/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Study time.Duration
	Break time.Duration

	Repeat bool
	Muted  bool
	// Volume is a base-2 gain; 0 plays at the synthesized level.
	Volume float64

	IdlePauseEnabled bool
	IdlePauseAfter   time.Duration
}

const (
	MinVolume = -4.0
	MaxVolume = 1.0
)

// DefaultSettings returns the classic 25/5 study cycle.
func DefaultSettings() Settings {
	return Settings{
		Study:          25 * time.Minute,
		Break:          5 * time.Minute,
		Repeat:         true,
		Muted:          false,
		Volume:         0,
		IdlePauseAfter: 5 * time.Minute,
	}
}

// SessionConfig converts settings to the timer's session configuration.
func (settings Settings) SessionConfig() model.SessionConfig {
	return model.SessionConfig{
		StudySeconds: int(settings.Study / time.Second),
		BreakSeconds: int(settings.Break / time.Second),
		Repeat:       settings.Repeat,
	}
}

// IdlePauseConfig converts settings to the idle pause configuration.
func (settings Settings) IdlePauseConfig() model.IdlePauseConfig {
	return model.IdlePauseConfig{
		Enabled:       settings.IdlePauseEnabled,
		After:         settings.IdlePauseAfter,
		CheckInterval: 5 * time.Second,
	}
}

// ClampVolume keeps a volume inside the range the settings window offers.
func ClampVolume(volume float64) float64 {
	if volume < MinVolume {
		return MinVolume
	}
	if volume > MaxVolume {
		return MaxVolume
	}
	return volume
}
