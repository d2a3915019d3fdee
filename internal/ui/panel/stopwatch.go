package panel

import (
	"timekeeper/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Stopwatch renders a stopwatch engine and its lap list.
// Refresh must run on the fyne main goroutine.
type Stopwatch struct {
	engine    *timekeeper.Stopwatch
	display   *canvas.Text
	toggle    *widget.Button
	lap       *widget.Button
	reset     *widget.Button
	lapList   *widget.List
	lapHeader *widget.Label
	laps      []int64
	content   fyne.CanvasObject
}

// NewStopwatch builds the stopwatch tab.
func NewStopwatch(engine *timekeeper.Stopwatch) *Stopwatch {
	panel := &Stopwatch{engine: engine}

	panel.display = canvas.NewText("--:--.--", displayColor)
	panel.display.Alignment = fyne.TextAlignCenter
	panel.display.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	panel.display.TextSize = displayTextSize

	panel.toggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), panel.handleToggle)
	panel.toggle.Importance = widget.HighImportance
	panel.lap = widget.NewButtonWithIcon("Lap", theme.MediaRecordIcon(), panel.intent(engine.Lap))
	panel.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), panel.intent(engine.Reset))

	panel.lapHeader = widget.NewLabelWithStyle("Lap Times", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	panel.lapList = widget.NewList(
		func() int {
			return len(panel.laps)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewLabel("Lap 00"),
				layout.NewSpacer(),
				widget.NewLabelWithStyle("00:00.00", fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true}),
			)
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < 0 || id >= len(panel.laps) {
				return
			}
			row := item.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(timekeeper.LapLabel(id, len(panel.laps)))
			row.Objects[2].(*widget.Label).SetText(timekeeper.FormatStopwatch(panel.laps[id]))
		},
	)

	controls := container.NewHBox(layout.NewSpacer(), panel.toggle, panel.lap, panel.reset, layout.NewSpacer())
	top := container.NewVBox(panel.display, controls, panel.lapHeader)
	panel.content = container.NewBorder(top, nil, nil, nil, panel.lapList)

	panel.Refresh()
	return panel
}

// Content returns the tab body.
func (panel *Stopwatch) Content() fyne.CanvasObject {
	return panel.content
}

// Refresh re-reads the engine snapshot.
func (panel *Stopwatch) Refresh() {
	snapshot := panel.engine.Snapshot()

	panel.display.Text = timekeeper.FormatStopwatch(snapshot.ElapsedMillis)
	panel.display.Refresh()

	if snapshot.State == timekeeper.StateRunning {
		panel.toggle.SetText("Pause")
		panel.toggle.SetIcon(theme.MediaPauseIcon())
		panel.lap.Enable()
	} else {
		panel.toggle.SetText("Start")
		panel.toggle.SetIcon(theme.MediaPlayIcon())
		panel.lap.Disable()
	}

	if len(snapshot.Laps) != len(panel.laps) {
		panel.laps = snapshot.Laps
		panel.lapList.Refresh()
	}
	if len(panel.laps) == 0 {
		panel.lapHeader.Hide()
	} else {
		panel.lapHeader.Show()
	}
}

func (panel *Stopwatch) handleToggle() {
	if panel.engine.Running() {
		panel.engine.Pause()
	} else {
		panel.engine.Start()
	}
	panel.Refresh()
}

func (panel *Stopwatch) intent(apply func()) func() {
	return func() {
		apply()
		panel.Refresh()
	}
}
