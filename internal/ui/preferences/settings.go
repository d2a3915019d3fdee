package preferences

import (
	"time"

	"timekeeper/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	CountdownMinutes int
	CountdownSeconds int

	NoticeOpacity    float64
	NoticeFullscreen bool
	ShowNotice       bool
}

// DefaultSettings returns default settings for TimeKeeper.
func DefaultSettings() Settings {
	return Settings{
		CountdownMinutes: 5,
		CountdownSeconds: 0,
		NoticeOpacity:    0.85,
		NoticeFullscreen: false,
		ShowNotice:       true,
	}
}

// TimeKeeperConfig converts settings to TimeKeeperConfig. Tick periods are
// fixed: one second for the countdown and 10ms for the stopwatch.
func (settings Settings) TimeKeeperConfig() model.TimeKeeperConfig {
	config := model.DefaultTimeKeeperConfig()
	config.Countdown.Minutes = settings.CountdownMinutes
	config.Countdown.Seconds = settings.CountdownSeconds
	config.Countdown.TickInterval = time.Second
	return config
}

// SameCountdown reports whether other carries the same default countdown target.
func (settings Settings) SameCountdown(other Settings) bool {
	return settings.CountdownMinutes == other.CountdownMinutes &&
		settings.CountdownSeconds == other.CountdownSeconds
}
