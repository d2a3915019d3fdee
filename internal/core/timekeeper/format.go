package timekeeper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat indicates text that is not an MM:SS countdown value.
var ErrInvalidFormat = errors.New("invalid countdown format")

// FormatCountdown renders total seconds as MM:SS. Negative values render as 00:00.
func FormatCountdown(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

// FormatStopwatch renders total milliseconds as MM:SS.CC.
func FormatStopwatch(totalMillis int64) string {
	if totalMillis < 0 {
		totalMillis = 0
	}
	minutes := totalMillis / 60000
	seconds := (totalMillis % 60000) / 1000
	centiseconds := (totalMillis % 1000) / 10
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centiseconds)
}

// ParseCountdown reads an MM:SS value back into total seconds. Both fields
// are unsigned digits, at least two wide, as FormatCountdown writes them.
func ParseCountdown(text string) (int, error) {
	minutesText, secondsText, ok := strings.Cut(strings.TrimSpace(text), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}
	if len(minutesText) < 2 || !digitsOnly(minutesText) {
		return 0, fmt.Errorf("%w: minutes %q", ErrInvalidFormat, minutesText)
	}
	minutes, err := strconv.Atoi(minutesText)
	if err != nil {
		return 0, fmt.Errorf("%w: minutes %q", ErrInvalidFormat, minutesText)
	}
	if len(secondsText) != 2 || !digitsOnly(secondsText) {
		return 0, fmt.Errorf("%w: seconds %q", ErrInvalidFormat, secondsText)
	}
	seconds, err := strconv.Atoi(secondsText)
	if err != nil || seconds > 59 {
		return 0, fmt.Errorf("%w: seconds %q", ErrInvalidFormat, secondsText)
	}
	return minutes*60 + seconds, nil
}

func digitsOnly(text string) bool {
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// LapLabel names the lap at index in a most-recent-first list of count laps.
// The oldest lap is "Lap 1".
func LapLabel(index, count int) string {
	return fmt.Sprintf("Lap %d", count-index)
}
