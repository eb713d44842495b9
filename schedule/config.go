package schedule

import (
	"fmt"

	"github.com/dgnsrekt/studypace/document"
)

const (
	// MinTotalDurationMinutes and MaxTotalDurationMinutes bound the
	// operator-chosen session length.
	MinTotalDurationMinutes = 15
	MaxTotalDurationMinutes = 90
)

// Config carries the operator-facing engine settings. Values arrive here
// already resolved from the config file, environment, and flags; the
// engine never reads the preference store itself.
type Config struct {
	// Session timing
	TotalDurationMinutes int `yaml:"total_duration_minutes" env:"STUDYPACE_TOTAL_DURATION_MINUTES"`
	IntroductionSeconds  int `yaml:"introduction_seconds"   env:"STUDYPACE_INTRODUCTION_SECONDS"`
	ConclusionSeconds    int `yaml:"conclusion_seconds"     env:"STUDYPACE_CONCLUSION_SECONDS"`
	AnswerSeconds        int `yaml:"answer_seconds"         env:"STUDYPACE_ANSWER_SECONDS"`

	// ReadingSpeedWPM is informational passthrough for the analyzer; the
	// engine trusts the document's precomputed reading times.
	ReadingSpeedWPM int `yaml:"reading_speed_wpm" env:"STUDYPACE_READING_SPEED_WPM"`

	// Alerts
	OvertimeGraceSeconds int     `yaml:"overtime_grace_seconds" env:"STUDYPACE_OVERTIME_GRACE_SECONDS"`
	Sound                bool    `yaml:"sound"                  env:"STUDYPACE_SOUND"`
	Volume               float64 `yaml:"volume"                 env:"STUDYPACE_VOLUME"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		TotalDurationMinutes: 60,
		IntroductionSeconds:  DefaultIntroductionSeconds,
		ConclusionSeconds:    DefaultConclusionSeconds,
		AnswerSeconds:        document.DefaultAnswerTimeSeconds,
		ReadingSpeedWPM:      165,
		OvertimeGraceSeconds: 30,
		Sound:                true,
		Volume:               0.8,
	}
}

// TotalDurationSeconds returns the operator-chosen total in seconds.
func (c Config) TotalDurationSeconds() int {
	return c.TotalDurationMinutes * 60
}

// Validate checks ranges that cannot be silently repaired.
func (c Config) Validate() error {
	if c.TotalDurationMinutes < MinTotalDurationMinutes || c.TotalDurationMinutes > MaxTotalDurationMinutes {
		return fmt.Errorf("%w: %d minutes (allowed %d-%d)",
			ErrInvalidDuration, c.TotalDurationMinutes, MinTotalDurationMinutes, MaxTotalDurationMinutes)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume must be between 0.0 and 1.0, got %.2f", c.Volume)
	}
	return nil
}

// Clamp repairs out-of-range values to their nearest legal ones. The
// returned config always passes Validate.
func (c Config) Clamp() Config {
	if c.TotalDurationMinutes < MinTotalDurationMinutes {
		c.TotalDurationMinutes = MinTotalDurationMinutes
	}
	if c.TotalDurationMinutes > MaxTotalDurationMinutes {
		c.TotalDurationMinutes = MaxTotalDurationMinutes
	}
	if c.IntroductionSeconds <= 0 {
		c.IntroductionSeconds = DefaultIntroductionSeconds
	}
	if c.ConclusionSeconds <= 0 {
		c.ConclusionSeconds = DefaultConclusionSeconds
	}
	if c.AnswerSeconds <= 0 {
		c.AnswerSeconds = document.DefaultAnswerTimeSeconds
	}
	if c.OvertimeGraceSeconds < 0 {
		c.OvertimeGraceSeconds = 0
	}
	if c.Volume < 0 {
		c.Volume = 0
	}
	if c.Volume > 1 {
		c.Volume = 1
	}
	return c
}
