package board

import (
	"image/color"

	"splittimer/internal/core/splits"
	"splittimer/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines board action handlers.
type Callbacks struct {
	OnAdvance     func()
	OnSwitch      func(index int)
	OnTogglePause func()
	OnReset       func()
	OnExport      func()
}

// Window shows one row per split with its running time.
type Window struct {
	window        fyne.Window
	callbacks     Callbacks
	nameButtons   []*widget.Button
	timeTexts     []*canvas.Text
	totalText     *canvas.Text
	advanceButton *widget.Button
	pauseButton   *widget.Button
	resetButton   *widget.Button
	exportButton  *widget.Button
}

var (
	warningColor = color.NRGBA{R: 232, G: 160, B: 32, A: 255}
	badColor     = color.NRGBA{R: 220, G: 50, B: 47, A: 255}
)

// New creates the board window for the given split names.
func New(app fyne.App, title string, names []string, callbacks Callbacks) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	board := &Window{
		window:    window,
		callbacks: callbacks,
	}

	rows := container.NewGridWithColumns(2)
	for index, name := range names {
		index := index
		nameButton := widget.NewButton(name, func() {
			if board.callbacks.OnSwitch != nil {
				board.callbacks.OnSwitch(index)
			}
		})
		nameButton.Importance = widget.LowImportance
		nameButton.Alignment = widget.ButtonAlignLeading

		timeText := canvas.NewText(export.FormatClock(0), theme.Color(theme.ColorNameForeground))
		timeText.Alignment = fyne.TextAlignTrailing
		timeText.TextSize = 18
		timeText.TextStyle = fyne.TextStyle{Monospace: true}

		board.nameButtons = append(board.nameButtons, nameButton)
		board.timeTexts = append(board.timeTexts, timeText)
		rows.Add(nameButton)
		rows.Add(timeText)
	}

	board.totalText = canvas.NewText("Total: "+export.FormatClock(0), theme.Color(theme.ColorNameForeground))
	board.totalText.Alignment = fyne.TextAlignCenter
	board.totalText.TextSize = 20
	board.totalText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}

	board.advanceButton = widget.NewButton("Start", func() { call(board.callbacks.OnAdvance) })
	board.advanceButton.Importance = widget.HighImportance
	board.pauseButton = widget.NewButton("Pause", func() { call(board.callbacks.OnTogglePause) })
	board.pauseButton.Disable()
	board.resetButton = widget.NewButton("Reset", func() { call(board.callbacks.OnReset) })
	board.exportButton = widget.NewButton("Export", func() { call(board.callbacks.OnExport) })

	buttons := container.NewVBox(
		board.advanceButton,
		container.NewGridWithColumns(3, board.pauseButton, board.resetButton, board.exportButton),
	)
	content := container.NewBorder(nil, buttons, nil, nil, container.NewVBox(rows, layout.NewSpacer(), board.totalText))
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(320, 0))

	return board
}

// Show displays the board window.
func (board *Window) Show() {
	board.window.Show()
	board.window.RequestFocus()
}

// SetOnClose sets the handler run instead of closing the window.
func (board *Window) SetOnClose(handler func()) {
	board.window.SetCloseIntercept(handler)
}

// Close closes the underlying window.
func (board *Window) Close() {
	board.window.Close()
}

// Render updates every label from a sample. It must run on the UI goroutine.
func (board *Window) Render(sample splits.Sample) {
	for _, split := range sample.Splits {
		if split.Index >= len(board.timeTexts) {
			continue
		}
		text := board.timeTexts[split.Index]
		text.Text = splitLabel(split, sample.Mode)
		text.Color = TierColor(split.Tier)
		text.TextStyle.Bold = split.Active
		text.Refresh()
	}

	board.totalText.Text = "Total: " + export.FormatClock(sample.Total)
	board.totalText.Refresh()

	board.renderButtons(sample.Mode)
}

// TierColor maps a tier to its text color.
func TierColor(tier splits.Tier) color.Color {
	switch tier {
	case splits.TierWarning:
		return warningColor
	case splits.TierBad:
		return badColor
	default:
		return theme.Color(theme.ColorNameForeground)
	}
}

func (board *Window) renderButtons(mode splits.Mode) {
	switch mode {
	case splits.ModeIdle:
		board.advanceButton.SetText("Start")
		board.advanceButton.Enable()
	case splits.ModeDone:
		board.advanceButton.SetText("Done")
		board.advanceButton.Disable()
	default:
		board.advanceButton.SetText("Split")
		board.advanceButton.Enable()
	}

	switch mode {
	case splits.ModeRunning:
		board.pauseButton.SetText("Pause")
		board.pauseButton.Enable()
	case splits.ModePaused:
		board.pauseButton.SetText("Resume")
		board.pauseButton.Enable()
	default:
		board.pauseButton.SetText("Pause")
		board.pauseButton.Disable()
	}
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}

func splitLabel(split splits.SplitSample, mode splits.Mode) string {
	label := export.FormatClock(split.Elapsed)
	if !split.Active {
		return label
	}
	switch mode {
	case splits.ModeRunning:
		return label + " (running)"
	case splits.ModePaused:
		return label + " (paused)"
	}
	return label
}
