package preferences

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	minutes    *widget.Entry
	seconds    *widget.Entry
	showNotice *widget.Check
	opacity    *widget.Slider
	fullscreen *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("TimeKeeper Settings")

	minutes := widget.NewEntry()
	seconds := widget.NewEntry()

	showNotice := widget.NewCheck("Show a notice when the timer finishes", nil)

	opacity := widget.NewSlider(0.5, 1)
	opacity.Step = 0.01

	fullscreen := widget.NewCheck("Fullscreen notice", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Default duration"), minutes, widget.NewLabel("min"), seconds, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Notice", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		showNotice,
		widget.NewLabel("Notice opacity"),
		opacity,
		fullscreen,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 300))

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		minutes:    minutes,
		seconds:    seconds,
		showNotice: showNotice,
		opacity:    opacity,
		fullscreen: fullscreen,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.minutes.SetText(strconv.Itoa(settings.CountdownMinutes))
	prefs.seconds.SetText(strconv.Itoa(settings.CountdownSeconds))
	prefs.showNotice.SetChecked(settings.ShowNotice)
	prefs.opacity.SetValue(settings.NoticeOpacity)
	prefs.fullscreen.SetChecked(settings.NoticeFullscreen)
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parseField(prefs.minutes.Text); ok {
		settings.CountdownMinutes = minutes
	}
	if seconds, ok := parseField(prefs.seconds.Text); ok {
		settings.CountdownSeconds = seconds
	}
	settings.ShowNotice = prefs.showNotice.Checked
	settings.NoticeOpacity = prefs.opacity.Value
	settings.NoticeFullscreen = prefs.fullscreen.Checked

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// parseField accepts a whole number of minutes or seconds in [0,59].
func parseField(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 || parsed > 59 {
		return 0, false
	}
	return parsed, true
}
