package tray

import (
	"fmt"

	"splittimer/internal/core/splits"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnAdvance     func()
	OnTogglePause func()
	OnReset       func()
	OnExport      func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	title       string
	statusItem  *fyne.MenuItem
	advanceItem *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	callbacks   Callbacks
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true
	manager.advanceItem = fyne.NewMenuItem("Start", func() { call(manager.callbacks.OnAdvance) })
	manager.pauseItem = fyne.NewMenuItem("Pause", func() { call(manager.callbacks.OnTogglePause) })
	manager.pauseItem.Disabled = true

	manager.refreshMenu()
	return manager
}

// Render refreshes labels from a sample. The menu is only rebuilt when a
// label actually changes.
func (manager *Manager) Render(sample splits.Sample) {
	status := statusText(sample)
	advance, pause, pauseDisabled := actionLabels(sample.Mode)
	if status == manager.statusLabel &&
		advance == manager.advanceItem.Label &&
		pause == manager.pauseItem.Label &&
		pauseDisabled == manager.pauseItem.Disabled {
		return
	}

	manager.statusLabel = status
	manager.statusItem.Label = "Status: " + status
	manager.advanceItem.Label = advance
	manager.advanceItem.Disabled = sample.Mode == splits.ModeDone
	manager.pauseItem.Label = pause
	manager.pauseItem.Disabled = pauseDisabled
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title,
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() { call(manager.callbacks.OnShow) }),
		fyne.NewMenuItemSeparator(),
		manager.advanceItem,
		manager.pauseItem,
		fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) }),
		fyne.NewMenuItem("Export now", func() { call(manager.callbacks.OnExport) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() { call(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	))
}

// statusText shows the active split with whole seconds so the tray changes
// at most once per second.
func statusText(sample splits.Sample) string {
	if sample.Active < 0 || sample.Active >= len(sample.Splits) {
		return string(sample.Mode)
	}
	split := sample.Splits[sample.Active]
	seconds := int(split.Elapsed.Seconds())
	status := fmt.Sprintf("%s %02d:%02d", split.Name, seconds/60, seconds%60)
	if sample.Mode == splits.ModePaused {
		status += " (paused)"
	}
	return status
}

func actionLabels(mode splits.Mode) (advance, pause string, pauseDisabled bool) {
	switch mode {
	case splits.ModeIdle:
		return "Start", "Pause", true
	case splits.ModeRunning:
		return "Split", "Pause", false
	case splits.ModePaused:
		return "Split", "Resume", false
	default:
		return "Done", "Pause", true
	}
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
