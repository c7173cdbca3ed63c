// Package timerwindow renders the single study timer window.
package timerwindow

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"studytimer/internal/core/session"
)

const (
	startLabel  = "Start Session"
	stopLabel   = "Stop"
	pauseLabel  = "Pause"
	resumeLabel = "Resume"
)

var (
	sunsetTop    = color.NRGBA{R: 255, G: 95, B: 109, A: 255}
	sunsetBottom = color.NRGBA{R: 255, G: 195, B: 113, A: 255}
	textColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	studyColor   = color.NRGBA{R: 126, G: 163, B: 150, A: 255}
	breakColor   = color.NRGBA{R: 178, G: 128, B: 124, A: 255}
)

// Controller is the subset of the session timer the window drives.
type Controller interface {
	Configure(studySeconds, breakSeconds int) error
	Start() error
	Stop()
	PauseOrResume()
	Snapshot() session.Snapshot
}

// Window is the main timer window.
type Window struct {
	window      fyne.Window
	timer       Controller
	study       durationFields
	brk         durationFields
	timerLabel  *canvas.Text
	statusLabel *canvas.Text
	startButton *widget.Button
	pauseButton *widget.Button
	notice      string
	onStart     func(studySeconds, breakSeconds int)
	onSettings  func()
}

type durationFields struct {
	hours   *widget.Entry
	minutes *widget.Entry
	seconds *widget.Entry
}

// New creates the timer window with the given initial durations.
func New(app fyne.App, timer Controller, studySeconds, breakSeconds int) *Window {
	window := app.NewWindow("Study Session Planner")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	background := canvas.NewVerticalGradient(sunsetTop, sunsetBottom)

	header := canvas.NewText("Study Planner", textColor)
	header.TextStyle = fyne.TextStyle{Bold: true}
	header.TextSize = 24
	header.Alignment = fyne.TextAlignCenter

	timerLabel := canvas.NewText(session.FormatRemaining(0), textColor)
	timerLabel.TextStyle = fyne.TextStyle{Bold: true}
	timerLabel.TextSize = 96
	timerLabel.Alignment = fyne.TextAlignCenter

	statusLabel := canvas.NewText(session.StatusText(session.StateIdle), textColor)
	statusLabel.TextSize = 20
	statusLabel.Alignment = fyne.TextAlignCenter

	timerWindow := &Window{
		window:      window,
		timer:       timer,
		study:       newDurationFields(studySeconds),
		brk:         newDurationFields(breakSeconds),
		timerLabel:  timerLabel,
		statusLabel: statusLabel,
	}

	timerWindow.startButton = widget.NewButtonWithIcon(startLabel, theme.MediaPlayIcon(), timerWindow.ToggleSession)
	timerWindow.startButton.Importance = widget.HighImportance
	timerWindow.pauseButton = widget.NewButtonWithIcon(pauseLabel, theme.MediaPauseIcon(), timerWindow.TogglePause)
	timerWindow.pauseButton.Disable()
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if timerWindow.onSettings != nil {
			timerWindow.onSettings()
		}
	})

	content := container.NewVBox(
		header,
		container.NewCenter(timerWindow.study.row("Study Duration:")),
		container.NewCenter(timerWindow.brk.row("Break Duration:")),
		timerLabel,
		statusLabel,
		container.NewHBox(layout.NewSpacer(), timerWindow.startButton, timerWindow.pauseButton, settingsButton, layout.NewSpacer()),
	)

	window.SetContent(container.NewStack(background, container.NewPadded(container.NewCenter(content))))
	window.Resize(fyne.NewSize(640, 560))

	timerWindow.Render(timer.Snapshot())
	return timerWindow
}

// Window returns the underlying fyne window.
func (timerWindow *Window) Window() fyne.Window {
	return timerWindow.window
}

// Show displays the window.
func (timerWindow *Window) Show() {
	timerWindow.window.Show()
	timerWindow.window.RequestFocus()
}

// SetOnStart registers a callback receiving the durations a session started with.
func (timerWindow *Window) SetOnStart(handler func(studySeconds, breakSeconds int)) {
	timerWindow.onStart = handler
}

// SetOnSettings registers the settings button handler.
func (timerWindow *Window) SetOnSettings(handler func()) {
	timerWindow.onSettings = handler
}

// SetDurations replaces the input fields while no session is running.
func (timerWindow *Window) SetDurations(studySeconds, breakSeconds int) {
	timerWindow.study.set(studySeconds)
	timerWindow.brk.set(breakSeconds)
}

// ToggleSession starts a session from Idle/Complete and stops it otherwise.
func (timerWindow *Window) ToggleSession() {
	state := timerWindow.timer.Snapshot().State
	if state != session.StateIdle && state != session.StateComplete {
		timerWindow.timer.Stop()
		timerWindow.notice = ""
		timerWindow.Render(timerWindow.timer.Snapshot())
		return
	}

	studySeconds := timerWindow.study.total()
	breakSeconds := timerWindow.brk.total()
	timerWindow.notice = ""
	if err := timerWindow.timer.Configure(studySeconds, breakSeconds); err != nil {
		log.Printf("configure session: %v", err)
		timerWindow.notice = "Could not use those durations"
		timerWindow.Render(timerWindow.timer.Snapshot())
		return
	}
	if err := timerWindow.timer.Start(); err != nil {
		if errors.Is(err, session.ErrEmptySession) {
			timerWindow.notice = "Set a study or break time first"
		} else {
			log.Printf("start session: %v", err)
		}
		timerWindow.Render(timerWindow.timer.Snapshot())
		return
	}
	if timerWindow.onStart != nil {
		timerWindow.onStart(studySeconds, breakSeconds)
	}
	timerWindow.Render(timerWindow.timer.Snapshot())
}

// TogglePause pauses or resumes the running session.
func (timerWindow *Window) TogglePause() {
	timerWindow.timer.PauseOrResume()
	timerWindow.Render(timerWindow.timer.Snapshot())
}

// Listen renders every timer event on the UI thread until events is closed.
func (timerWindow *Window) Listen(events <-chan session.Event) {
	for event := range events {
		if event.Type == session.EventIdleError {
			log.Printf("idle detection: %s", event.Message)
			continue
		}
		fyne.Do(func() {
			timerWindow.Render(timerWindow.timer.Snapshot())
		})
	}
}

// Render updates every widget from a timer snapshot. Call on the UI thread.
func (timerWindow *Window) Render(snapshot session.Snapshot) {
	timerWindow.timerLabel.Text = session.FormatRemaining(snapshot.Remaining)
	timerWindow.timerLabel.Color = phaseColor(snapshot)
	timerWindow.timerLabel.Refresh()

	status := session.StatusText(snapshot.State)
	if timerWindow.notice != "" {
		status = timerWindow.notice
	}
	timerWindow.statusLabel.Text = status
	timerWindow.statusLabel.Refresh()

	running := snapshot.State != session.StateIdle && snapshot.State != session.StateComplete
	if running {
		timerWindow.startButton.SetText(stopLabel)
		timerWindow.startButton.SetIcon(theme.MediaStopIcon())
		timerWindow.pauseButton.Enable()
	} else {
		timerWindow.startButton.SetText(startLabel)
		timerWindow.startButton.SetIcon(theme.MediaPlayIcon())
		timerWindow.pauseButton.Disable()
	}
	if snapshot.State == session.StatePaused {
		timerWindow.pauseButton.SetText(resumeLabel)
		timerWindow.pauseButton.SetIcon(theme.MediaPlayIcon())
	} else {
		timerWindow.pauseButton.SetText(pauseLabel)
		timerWindow.pauseButton.SetIcon(theme.MediaPauseIcon())
	}
	timerWindow.study.setEnabled(!running)
	timerWindow.brk.setEnabled(!running)
}

func phaseColor(snapshot session.Snapshot) color.Color {
	state := snapshot.State
	if state == session.StatePaused {
		state = snapshot.Resumes
	}
	switch state {
	case session.StateStudying:
		return studyColor
	case session.StateOnBreak:
		return breakColor
	default:
		return textColor
	}
}

func newDurationFields(total int) durationFields {
	fields := durationFields{
		hours:   newDurationEntry(),
		minutes: newDurationEntry(),
		seconds: newDurationEntry(),
	}
	fields.set(total)
	return fields
}

func newDurationEntry() *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("00")
	return entry
}

func (fields durationFields) row(label string) *fyne.Container {
	return container.NewHBox(
		widget.NewLabel(label),
		fields.hours, widget.NewLabel("h"),
		fields.minutes, widget.NewLabel("m"),
		fields.seconds, widget.NewLabel("s"),
	)
}

func (fields durationFields) total() int {
	return session.FromHMS(fields.hours.Text, fields.minutes.Text, fields.seconds.Text)
}

func (fields durationFields) set(total int) {
	hours, minutes, seconds := session.SplitHMS(total)
	fields.hours.SetText(fmt.Sprintf("%02d", hours))
	fields.minutes.SetText(fmt.Sprintf("%02d", minutes))
	fields.seconds.SetText(fmt.Sprintf("%02d", seconds))
}

func (fields durationFields) setEnabled(enabled bool) {
	for _, entry := range []*widget.Entry{fields.hours, fields.minutes, fields.seconds} {
		if enabled {
			entry.Enable()
		} else {
			entry.Disable()
		}
	}
}
