package tray

import (
	"testing"
	"time"

	"splittimer/internal/core/splits"

	"fyne.io/fyne/v2"
)

type fakeDesktop struct {
	menus []*fyne.Menu
}

func (app *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menus = append(app.menus, menu)
}

func (app *fakeDesktop) SetSystemTrayIcon(fyne.Resource) {}

func (app *fakeDesktop) SetSystemTrayWindow(fyne.Window) {}

func pausedSample() splits.Sample {
	return splits.Sample{
		Mode:   splits.ModePaused,
		Active: 0,
		Splits: []splits.SplitSample{{Index: 0, Name: "Warm-up", Elapsed: 83*time.Second + 400*time.Millisecond, Active: true}},
	}
}

func TestUpdateRebuildsOnlyOnChange(t *testing.T) {
	desktop := &fakeDesktop{}
	manager := New(desktop, "Run", Callbacks{})
	if len(desktop.menus) != 1 {
		t.Fatalf("expected initial menu, got %d", len(desktop.menus))
	}

	manager.Render(pausedSample())
	manager.Render(pausedSample())
	if len(desktop.menus) != 2 {
		t.Fatalf("expected a single rebuild, got %d menus", len(desktop.menus))
	}
	if manager.statusItem.Label != "Status: Warm-up 01:23 (paused)" {
		t.Fatalf("status label: %q", manager.statusItem.Label)
	}
	if manager.pauseItem.Label != "Resume" || manager.pauseItem.Disabled {
		t.Fatalf("pause item: %q disabled=%t", manager.pauseItem.Label, manager.pauseItem.Disabled)
	}
}

func TestMenuActionsReachCallbacks(t *testing.T) {
	desktop := &fakeDesktop{}
	advanced := false
	New(desktop, "Run", Callbacks{OnAdvance: func() { advanced = true }})

	for _, item := range desktop.menus[0].Items {
		if item.Label == "Start" && item.Action != nil {
			item.Action()
		}
	}
	if !advanced {
		t.Fatalf("start item did not reach OnAdvance")
	}
}

func TestStatusTextWithoutActiveSplit(t *testing.T) {
	if got := statusText(splits.Sample{Mode: splits.ModeDone, Active: -1}); got != "done" {
		t.Fatalf("status: %q", got)
	}
}
