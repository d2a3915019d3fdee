package main

import (
	"context"
	"errors"
	"fmt"

	"timekeeper/internal/core/ticker"
	"timekeeper/internal/core/timekeeper"
	"timekeeper/internal/platform"
	"timekeeper/internal/storage"
	"timekeeper/internal/ui/overlay"
	"timekeeper/internal/ui/preferences"
	"timekeeper/internal/ui/tabs"
	"timekeeper/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

func runGUI(env *environment) error {
	guard, err := platform.AcquireSingleInstance(appName + "-gui")
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			env.logger.Info("another window is already open", "error", err)
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.timekeeper.app")
	fyneApp.SetIcon(theme.HistoryIcon())

	settings := env.settings
	session := timekeeper.NewSession(settings.TimeKeeperConfig(), timekeeper.Options{
		// DoAndWait keeps at most one tick in flight; a stalled main loop drops ticks instead of queueing them.
		Ticker:   ticker.NewClock(nil, fyne.DoAndWait),
		Logger:   env.logger,
		Recorder: env.recorder,
	})
	defer session.Close()
	logger := env.logger.With("session", session.ID())

	mainWindow := tabs.New(fyneApp, session)
	notice := overlay.New(fyneApp, noticeConfig(settings))
	notice.SetOnRestart(func() {
		session.Countdown().Reset()
		session.Countdown().Start()
		mainWindow.Select(timekeeper.TabTimer)
		mainWindow.RefreshAll()
	})

	applySettings := func(updated preferences.Settings) {
		previous := settings
		settings = updated
		if !previous.SameCountdown(updated) {
			session.Reconfigure(settings.TimeKeeperConfig())
		}
		notice.UpdateConfig(noticeConfig(settings))
		mainWindow.RefreshAll()
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		applySettings(updated)
		if err := storage.SaveSettings(env.settingsPath, updated); err != nil {
			logger.Error("save settings", "path", env.settingsPath, "error", err)
		}
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: mainWindow.Show,
			OnToggle: func() {
				if active := session.Active(); active != nil {
					if active.Running() {
						active.Pause()
					} else {
						active.Start()
					}
				}
				mainWindow.RefreshAll()
			},
			OnReset: func() {
				if active := session.Active(); active != nil {
					active.Reset()
				}
				mainWindow.RefreshAll()
			},
			OnLap: func() {
				session.Stopwatch().Lap()
				mainWindow.RefreshAll()
			},
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
		mainWindow.Window().SetCloseIntercept(mainWindow.Window().Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		mainWindow.Window().SetMaster()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher, err := storage.NewWatcher(env.settingsPath, func(updated preferences.Settings) {
		fyne.Do(func() {
			prefsWindow.UpdateSettings(updated)
			applySettings(updated)
		})
	})
	if err != nil {
		logger.Warn("settings watcher disabled", "error", err)
	} else {
		watcher.SetLogger(logger)
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("settings watcher disabled", "error", err)
		}
		defer func() {
			_ = watcher.Close()
		}()
	}

	handle := func(event timekeeper.Event) {
		mainWindow.Refresh(event.Kind)
		if trayManager != nil && event.Kind == kindOf(session.ActiveTab()) {
			updateTray(trayManager, session)
		}
		if event.Type == timekeeper.EventFinished && settings.ShowNotice {
			notice.Show(timekeeper.FormatCountdown(event.TargetSeconds))
		}
	}
	forward(session.Countdown().Subscribe(16), handle)
	forward(session.Stopwatch().Subscribe(16), handle)

	mainWindow.Show()
	fyneApp.Run()
	return nil
}

// forward delivers engine events on the fyne main goroutine.
func forward(events <-chan timekeeper.Event, handle func(timekeeper.Event)) {
	go func() {
		for event := range events {
			fyne.Do(func() {
				handle(event)
			})
		}
	}()
}

func updateTray(trayManager *tray.Manager, session *timekeeper.Session) {
	active := session.Active()
	if active == nil {
		return
	}
	trayManager.SetStatus(active.Display())
	trayManager.SetRunning(active.Running())
	trayManager.SetLapEnabled(session.ActiveTab() == timekeeper.TabStopwatch && active.Running())
}

func kindOf(tab timekeeper.Tab) timekeeper.Kind {
	if tab == timekeeper.TabStopwatch {
		return timekeeper.KindStopwatch
	}
	return timekeeper.KindCountdown
}

func noticeConfig(settings preferences.Settings) overlay.Config {
	return overlay.Config{
		Opacity:    overlay.OpacityAlpha(settings.NoticeOpacity),
		Fullscreen: settings.NoticeFullscreen,
		Message:    overlay.DefaultMessage,
	}
}
