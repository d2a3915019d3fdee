package tabs

import (
	"image/color"

	"timekeeper/internal/core/timekeeper"
	"timekeeper/internal/ui/panel"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
)

// Window is the main window with one tab per engine.
type Window struct {
	window    fyne.Window
	tabs      *container.AppTabs
	session   *timekeeper.Session
	countdown *panel.Countdown
	stopwatch *panel.Stopwatch
	timerTab  *container.TabItem
	watchTab  *container.TabItem
}

// New builds the main window and activates the timer tab.
func New(app fyne.App, session *timekeeper.Session) *Window {
	window := app.NewWindow("TimeKeeper")

	main := &Window{
		window:    window,
		session:   session,
		countdown: panel.NewCountdown(session.Countdown()),
		stopwatch: panel.NewStopwatch(session.Stopwatch()),
	}
	main.timerTab = container.NewTabItemWithIcon("Timer", theme.HistoryIcon(), main.countdown.Content())
	main.watchTab = container.NewTabItemWithIcon("Stopwatch", theme.MediaRecordIcon(), main.stopwatch.Content())
	main.tabs = container.NewAppTabs(main.timerTab, main.watchTab)
	main.tabs.OnSelected = main.handleSelected

	title := canvas.NewText("TimeKeeper", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 22
	subtitle := canvas.NewText("Your timer & stopwatch companion", color.NRGBA{R: 203, G: 213, B: 225, A: 255})
	subtitle.Alignment = fyne.TextAlignCenter
	subtitle.TextSize = 13

	window.SetContent(container.NewBorder(container.NewVBox(title, subtitle), nil, nil, nil, main.tabs))
	window.Resize(fyne.NewSize(420, 520))

	session.Activate(timekeeper.TabTimer)
	return main
}

// Window returns the underlying fyne window.
func (main *Window) Window() fyne.Window {
	return main.window
}

// Show displays and focuses the window.
func (main *Window) Show() {
	main.window.Show()
	main.window.RequestFocus()
}

// Select switches to the tab of the given engine.
func (main *Window) Select(tab timekeeper.Tab) {
	switch tab {
	case timekeeper.TabTimer:
		main.tabs.Select(main.timerTab)
	case timekeeper.TabStopwatch:
		main.tabs.Select(main.watchTab)
	}
}

// Refresh redraws the panel for the engine that emitted an event.
func (main *Window) Refresh(kind timekeeper.Kind) {
	switch kind {
	case timekeeper.KindCountdown:
		main.countdown.Refresh()
	case timekeeper.KindStopwatch:
		main.stopwatch.Refresh()
	}
}

// RefreshAll redraws both panels.
func (main *Window) RefreshAll() {
	main.countdown.Refresh()
	main.stopwatch.Refresh()
}

func (main *Window) handleSelected(item *container.TabItem) {
	if item == main.watchTab {
		main.session.Activate(timekeeper.TabStopwatch)
	} else {
		main.session.Activate(timekeeper.TabTimer)
	}
	// Leaving a tab pauses its engine.
	main.RefreshAll()
}
