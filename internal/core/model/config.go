package model

import "time"

// CountdownConfig defines the countdown's initial target and tick period.
type CountdownConfig struct {
	Minutes      int
	Seconds      int
	TickInterval time.Duration
}

// StopwatchConfig defines the stopwatch tick period. Every tick advances the
// elapsed time by exactly one period.
type StopwatchConfig struct {
	TickInterval time.Duration
}

// TimeKeeperConfig contains runtime settings for both engines.
type TimeKeeperConfig struct {
	Countdown CountdownConfig
	Stopwatch StopwatchConfig
}

// DefaultTimeKeeperConfig returns a five minute countdown ticking every
// second and a stopwatch ticking every 10ms.
func DefaultTimeKeeperConfig() TimeKeeperConfig {
	return TimeKeeperConfig{
		Countdown: CountdownConfig{
			Minutes:      5,
			Seconds:      0,
			TickInterval: time.Second,
		},
		Stopwatch: StopwatchConfig{
			TickInterval: 10 * time.Millisecond,
		},
	}
}
