package overlay

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Config defines notice visuals.
type Config struct {
	Opacity    uint8
	Fullscreen bool
	Message    string
}

// DefaultMessage is shown when Config.Message is empty.
const DefaultMessage = "Time's Up!"

// Window is the notice raised when a countdown finishes.
type Window struct {
	window        fyne.Window
	config        Config
	titleLabel    *canvas.Text
	subtitleLabel *canvas.Text
	background    *canvas.Rectangle
	dismissButton *widget.Button
	restartButton *widget.Button
	onDismiss     func()
	onRestart     func()
	visible       bool
}

const (
	noticeWidthFraction  = float32(0.22)
	noticeHeightFraction = float32(0.2)
	defaultScreenWidth   = float32(1920)
	defaultScreenHeight  = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the notice window. It stays hidden until Show.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("TimeKeeper")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity})

	titleLabel := canvas.NewText(messageOrDefault(config.Message), color.NRGBA{R: 253, G: 224, B: 71, A: 255})
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 28

	subtitleLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	subtitleLabel.Alignment = fyne.TextAlignCenter
	subtitleLabel.TextSize = 15

	notice := &Window{
		window:        window,
		config:        config,
		titleLabel:    titleLabel,
		subtitleLabel: subtitleLabel,
		background:    background,
	}

	notice.dismissButton = widget.NewButton("Dismiss", func() {
		notice.Hide()
		if notice.onDismiss != nil {
			notice.onDismiss()
		}
	})
	notice.restartButton = widget.NewButton("Restart", func() {
		notice.Hide()
		if notice.onRestart != nil {
			notice.onRestart()
		}
	})
	notice.restartButton.Importance = widget.HighImportance

	buttons := container.NewHBox(layout.NewSpacer(), notice.dismissButton, notice.restartButton, layout.NewSpacer())
	content := container.NewPadded(container.NewVBox(layout.NewSpacer(), titleLabel, subtitleLabel, layout.NewSpacer(), buttons))
	window.SetContent(container.NewStack(background, content))
	window.SetCloseIntercept(notice.Hide)

	return notice
}

// Show raises the notice for a countdown that ran for target seconds.
func (notice *Window) Show(target string) {
	notice.subtitleLabel.Text = fmt.Sprintf("Your %s timer has finished", target)
	notice.subtitleLabel.Refresh()
	notice.applyWindowMode()
	notice.window.Show()
	notice.window.RequestFocus()
	notice.applyNativeOpacity(notice.config.Opacity)
	notice.visible = true
}

// Hide closes the notice.
func (notice *Window) Hide() {
	if notice.config.Fullscreen {
		notice.window.SetFullScreen(false)
	}
	notice.window.Hide()
	notice.visible = false
}

// Visible reports whether the notice is showing.
func (notice *Window) Visible() bool {
	return notice.visible
}

// SetOnDismiss sets the handler run after Dismiss.
func (notice *Window) SetOnDismiss(handler func()) {
	notice.onDismiss = handler
}

// SetOnRestart sets the handler run after Restart.
func (notice *Window) SetOnRestart(handler func()) {
	notice.onRestart = handler
}

// UpdateConfig updates notice visuals.
func (notice *Window) UpdateConfig(config Config) {
	notice.config = config
	notice.background.FillColor = color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity}
	notice.titleLabel.Text = messageOrDefault(config.Message)
	canvas.Refresh(notice.background)
	notice.titleLabel.Refresh()
	if notice.visible {
		notice.applyWindowMode()
		notice.applyNativeOpacity(config.Opacity)
	}
}

// OpacityAlpha converts a [0,1] opacity into a color alpha.
func OpacityAlpha(opacity float64) uint8 {
	if opacity <= 0 {
		return 0
	}
	if opacity >= 1 {
		return 255
	}
	return uint8(opacity*255 + 0.5)
}

func (notice *Window) applyWindowMode() {
	if notice.config.Fullscreen {
		notice.window.SetFullScreen(true)
		return
	}
	notice.window.SetFullScreen(false)
	notice.resizeToScreenFraction()
}

func (notice *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := notice.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * noticeWidthFraction
	height := screenSize.Height * noticeHeightFraction
	minSize := notice.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	notice.window.Resize(fyne.NewSize(width, height))
	notice.window.CenterOnScreen()
}

func messageOrDefault(message string) string {
	if message == "" {
		return DefaultMessage
	}
	return message
}
