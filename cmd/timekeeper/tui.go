package main

import (
	"errors"
	"fmt"

	"timekeeper/internal/core/ticker"
	"timekeeper/internal/core/timekeeper"
	"timekeeper/internal/platform"
	"timekeeper/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func runTUI(env *environment) error {
	guard, err := platform.AcquireSingleInstance(appName + "-tui")
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			return fmt.Errorf("terminal session already open: %w", err)
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	relay := &tui.Relay{}
	session := timekeeper.NewSession(env.settings.TimeKeeperConfig(), timekeeper.Options{
		Ticker:   ticker.NewClock(nil, relay.Dispatch),
		Logger:   env.logger,
		Recorder: env.recorder,
	})
	defer session.Close()

	program := tea.NewProgram(tui.New(session), tea.WithAltScreen())
	relay.Attach(program)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
