package panel

import (
	"fmt"
	"image/color"

	"timekeeper/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	displayColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	finishedColor = color.NRGBA{R: 239, G: 68, B: 68, A: 255}
	noticeColor   = color.NRGBA{R: 253, G: 224, B: 71, A: 255}
)

const displayTextSize = 72

// Countdown renders a countdown engine and forwards button presses to it.
// Refresh must run on the fyne main goroutine.
type Countdown struct {
	engine   *timekeeper.Countdown
	display  *canvas.Text
	minutes  *widget.Label
	seconds  *widget.Label
	editor   *fyne.Container
	toggle   *widget.Button
	reset    *widget.Button
	finished *canvas.Text
	content  fyne.CanvasObject
}

// NewCountdown builds the timer tab.
func NewCountdown(engine *timekeeper.Countdown) *Countdown {
	panel := &Countdown{engine: engine}

	panel.display = canvas.NewText("--:--", displayColor)
	panel.display.Alignment = fyne.TextAlignCenter
	panel.display.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	panel.display.TextSize = displayTextSize

	panel.minutes = widget.NewLabelWithStyle("00", fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})
	panel.seconds = widget.NewLabelWithStyle("00", fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})

	panel.editor = container.NewVBox(
		container.NewHBox(
			layout.NewSpacer(),
			adjuster("Minutes", panel.minutes, panel.intent(func() { engine.AdjustMinutes(-1) }), panel.intent(func() { engine.AdjustMinutes(1) })),
			adjuster("Seconds", panel.seconds, panel.intent(func() { engine.AdjustSeconds(-1) }), panel.intent(func() { engine.AdjustSeconds(1) })),
			layout.NewSpacer(),
		),
		widget.NewButton("Set Timer", panel.intent(engine.ApplyConfiguration)),
	)

	panel.toggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), panel.handleToggle)
	panel.toggle.Importance = widget.HighImportance
	panel.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), panel.intent(engine.Reset))

	panel.finished = canvas.NewText("Time's Up!", noticeColor)
	panel.finished.Alignment = fyne.TextAlignCenter
	panel.finished.TextStyle = fyne.TextStyle{Bold: true}
	panel.finished.TextSize = 24

	panel.content = container.NewVBox(
		panel.display,
		panel.editor,
		container.NewHBox(layout.NewSpacer(), panel.toggle, panel.reset, layout.NewSpacer()),
		panel.finished,
	)

	panel.Refresh()
	return panel
}

// Content returns the tab body.
func (panel *Countdown) Content() fyne.CanvasObject {
	return panel.content
}

// Refresh re-reads the engine snapshot.
func (panel *Countdown) Refresh() {
	snapshot := panel.engine.Snapshot()

	panel.display.Text = timekeeper.FormatCountdown(snapshot.RemainingSeconds)
	panel.display.Color = displayColor
	if snapshot.Finished {
		panel.display.Color = finishedColor
	}
	panel.display.Refresh()

	panel.minutes.SetText(fmt.Sprintf("%02d", snapshot.Minutes))
	panel.seconds.SetText(fmt.Sprintf("%02d", snapshot.Seconds))

	running := snapshot.State == timekeeper.StateRunning
	if running {
		panel.editor.Hide()
		panel.toggle.SetText("Pause")
		panel.toggle.SetIcon(theme.MediaPauseIcon())
		panel.toggle.Enable()
	} else {
		panel.editor.Show()
		panel.toggle.SetText("Start")
		panel.toggle.SetIcon(theme.MediaPlayIcon())
		if snapshot.RemainingSeconds == 0 {
			panel.toggle.Disable()
		} else {
			panel.toggle.Enable()
		}
	}

	if snapshot.Finished {
		panel.finished.Show()
	} else {
		panel.finished.Hide()
	}
}

func (panel *Countdown) handleToggle() {
	if panel.engine.Running() {
		panel.engine.Pause()
	} else {
		panel.engine.Start()
	}
	panel.Refresh()
}

func (panel *Countdown) intent(apply func()) func() {
	return func() {
		apply()
		panel.Refresh()
	}
}

func adjuster(title string, value *widget.Label, decrement, increment func()) fyne.CanvasObject {
	return container.NewVBox(
		widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{}),
		container.NewHBox(
			widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), decrement),
			value,
			widget.NewButtonWithIcon("", theme.ContentAddIcon(), increment),
		),
	)
}
