package main

import (
	"fmt"
	"io"

	"timekeeper/internal/core/timekeeper"
)

func runFormatCountdown(w io.Writer, seconds int) error {
	if seconds < 0 {
		return fmt.Errorf("format countdown: negative seconds %d", seconds)
	}
	_, err := fmt.Fprintln(w, timekeeper.FormatCountdown(seconds))
	return err
}

func runFormatStopwatch(w io.Writer, millis int64) error {
	if millis < 0 {
		return fmt.Errorf("format stopwatch: negative milliseconds %d", millis)
	}
	_, err := fmt.Fprintln(w, timekeeper.FormatStopwatch(millis))
	return err
}
