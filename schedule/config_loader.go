package schedule

import (
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// LoadConfigFromViper loads engine configuration from Viper with
// STUDYPACE_* environment variables layered on top. Out-of-range values
// are clamped, not rejected; the clamp is logged so the operator can see
// their setting was adjusted.
func LoadConfigFromViper() Config {
	cfg := DefaultConfig()

	if viper.IsSet("session.total_duration_minutes") {
		cfg.TotalDurationMinutes = viper.GetInt("session.total_duration_minutes")
	}
	if viper.IsSet("session.introduction_seconds") {
		cfg.IntroductionSeconds = viper.GetInt("session.introduction_seconds")
	}
	if viper.IsSet("session.conclusion_seconds") {
		cfg.ConclusionSeconds = viper.GetInt("session.conclusion_seconds")
	}
	if viper.IsSet("session.answer_seconds") {
		cfg.AnswerSeconds = viper.GetInt("session.answer_seconds")
	}
	if viper.IsSet("session.reading_speed_wpm") {
		cfg.ReadingSpeedWPM = viper.GetInt("session.reading_speed_wpm")
	}

	if viper.IsSet("alerts.overtime_grace_seconds") {
		cfg.OvertimeGraceSeconds = viper.GetInt("alerts.overtime_grace_seconds")
	}
	if viper.IsSet("alerts.sound") {
		cfg.Sound = viper.GetBool("alerts.sound")
	}
	if viper.IsSet("alerts.volume") {
		cfg.Volume = viper.GetFloat64("alerts.volume")
	}

	if err := env.Parse(&cfg); err != nil {
		log.Warn("Ignoring malformed environment overrides", "err", err)
	}

	clamped := cfg.Clamp()
	if clamped != cfg {
		log.Warn("Configuration values adjusted to supported ranges",
			"total_duration_minutes", clamped.TotalDurationMinutes,
			"volume", clamped.Volume)
	}
	return clamped
}

// SetDefaults registers engine defaults with Viper so a generated config
// file documents them.
func SetDefaults() {
	defaults := DefaultConfig()

	viper.SetDefault("session.total_duration_minutes", defaults.TotalDurationMinutes)
	viper.SetDefault("session.introduction_seconds", defaults.IntroductionSeconds)
	viper.SetDefault("session.conclusion_seconds", defaults.ConclusionSeconds)
	viper.SetDefault("session.answer_seconds", defaults.AnswerSeconds)
	viper.SetDefault("session.reading_speed_wpm", defaults.ReadingSpeedWPM)

	viper.SetDefault("alerts.overtime_grace_seconds", defaults.OvertimeGraceSeconds)
	viper.SetDefault("alerts.sound", defaults.Sound)
	viper.SetDefault("alerts.volume", defaults.Volume)
}
