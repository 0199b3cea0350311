package preferences

import (
	"strconv"
	"strings"

	"splittimer/internal/config"
	"splittimer/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI. Sound and export directory apply at
// once; thresholds are stored for the next launch.
type Window struct {
	window    fyne.Window
	settings  config.Settings
	onSave    func(config.Settings)
	sound     *widget.Check
	exportDir *widget.Entry
	warning   *widget.Entry
	bad       *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings config.Settings, onSave func(config.Settings)) *Window {
	window := app.NewWindow("Split Timer Settings")

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		sound:     widget.NewCheck("Play a sound on warning and bad splits", nil),
		exportDir: widget.NewEntry(),
		warning:   widget.NewEntry(),
		bad:       widget.NewEntry(),
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.sound,
		widget.NewLabel("Export directory"),
		prefs.exportDir,
		widget.NewLabelWithStyle("Thresholds (next launch)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(3, widget.NewLabel("Warning after"), prefs.warning, widget.NewLabel("sec")),
		container.NewGridWithColumns(3, widget.NewLabel("Bad after"), prefs.bad, widget.NewLabel("sec")),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(420, 300))

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings config.Settings) {
	prefs.settings = settings
	prefs.sound.SetChecked(settings.Sound)
	prefs.exportDir.SetText(settings.ExportDir)
	prefs.warning.SetText(formatSeconds(settings.WarningSeconds))
	prefs.bad.SetText(formatSeconds(settings.BadSeconds))
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.Sound = prefs.sound.Checked
	if dir := strings.TrimSpace(prefs.exportDir.Text); dir != "" {
		settings.ExportDir = dir
	}
	if seconds, ok := parseSeconds(prefs.warning.Text); ok {
		settings.WarningSeconds = seconds
	}
	if seconds, ok := parseSeconds(prefs.bad.Text); ok {
		settings.BadSeconds = seconds
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// parseSeconds accepts an empty field as "disabled".
func parseSeconds(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, true
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || model.CheckSeconds("", parsed) != nil {
		return 0, false
	}
	return parsed, true
}

func formatSeconds(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
