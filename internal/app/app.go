package app

import (
	"fmt"

	"splittimer/internal/config"
	"splittimer/internal/core/model"
	"splittimer/internal/core/splittimer"
	"splittimer/internal/platform"
	"splittimer/internal/ui/board"
	"splittimer/internal/ui/preferences"
	"splittimer/internal/ui/tray"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

// Name is used for the config directory and the run lock.
const Name = "SplitTimer"

// Options describe one application launch.
type Options struct {
	Settings     config.Settings
	SettingsPath string
	Run          model.RunDefinition
	RunKey       string
}

// Run opens the timer window and blocks until the user quits. The run is
// exported on the way out.
func Run(options Options) error {
	lock, err := platform.LockRun(Name, options.RunKey)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	timer, err := splittimer.New(options.Run, splittimer.Config{PollInterval: options.Settings.PollInterval})
	if err != nil {
		return fmt.Errorf("create timer: %w", err)
	}

	fyneApp := fyneapp.NewWithID("io.splittimer.app")
	fyneApp.SetIcon(theme.HistoryIcon())

	ctrl := newController(timer, options.Settings, selectChime(options.Settings.Sound), fyne.Do)
	quit := func() {
		ctrl.shutdown()
		fyneApp.Quit()
	}

	boardWindow := board.New(fyneApp, options.Run.Title, options.Run.Splits, board.Callbacks{
		OnAdvance:     func() { report("advance", timer.Advance()) },
		OnSwitch:      func(index int) { report("switch", timer.SwitchTo(index)) },
		OnTogglePause: func() { report("pause", timer.TogglePause()) },
		OnReset:       timer.Reset,
		OnExport:      func() { ctrl.exportNow() },
	})
	boardWindow.SetOnClose(quit)
	ctrl.addView(boardWindow)

	saved := options.Settings
	prefsWindow := preferences.New(fyneApp, options.Settings, func(updated config.Settings) {
		ctrl.applySettings(updated)
		if options.SettingsPath == "" {
			return
		}
		if err := config.SaveChanges(options.SettingsPath, saved, updated); err != nil {
			report("save settings", err)
			return
		}
		saved = updated
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
		ctrl.addView(tray.New(desktopApp, options.Run.Title, tray.Callbacks{
			OnShow:        boardWindow.Show,
			OnAdvance:     func() { report("advance", timer.Advance()) },
			OnTogglePause: func() { report("pause", timer.TogglePause()) },
			OnReset:       timer.Reset,
			OnExport:      func() { ctrl.exportNow() },
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		}))
	}

	events := timer.Subscribe(32)
	go ctrl.consume(events)
	timer.Start()

	boardWindow.Show()
	fyneApp.Run()
	ctrl.shutdown()
	return nil
}
