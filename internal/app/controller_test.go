package app

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"splittimer/internal/config"
	"splittimer/internal/core/model"
	"splittimer/internal/core/splits"
	"splittimer/internal/core/splittimer"
	"splittimer/internal/export"
	"splittimer/internal/platform"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (clock *stepClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *stepClock) Forward(d time.Duration) {
	clock.mu.Lock()
	clock.now = clock.now.Add(d)
	clock.mu.Unlock()
}

type recordingChime struct {
	played []splits.Tier
	err    error
}

func (chime *recordingChime) Play(tier splits.Tier) error {
	chime.played = append(chime.played, tier)
	return chime.err
}

type recordingView struct {
	samples []splits.Sample
}

func (view *recordingView) Render(sample splits.Sample) {
	view.samples = append(view.samples, sample)
}

func newTestController(t *testing.T, chime platform.Chime) (*controller, *stepClock, config.Settings) {
	t.Helper()
	clock := &stepClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)}
	timer, err := splittimer.New(model.RunDefinition{
		Title:  "Test Run",
		Splits: []string{"A", "B"},
		Thresholds: model.Thresholds{
			Warning: model.LimitSeconds(5),
			Bad:     model.LimitSeconds(10),
		},
	}, splittimer.Config{Clock: clock})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	dir := t.TempDir()
	settings := config.Settings{
		ExportDir:   filepath.Join(dir, "exports"),
		MetricsFile: filepath.Join(dir, "splittimer.prom"),
	}
	return newController(timer, settings, chime, func(run func()) { run() }), clock, settings
}

func TestTierChangesPlayRisingCuesOnly(t *testing.T) {
	chime := &recordingChime{}
	ctrl, _, _ := newTestController(t, chime)

	ctrl.handle(splittimer.Event{Type: splittimer.EventTierChange, Tier: splittimer.TierChange{Name: "A", From: splits.TierNormal, To: splits.TierWarning}})
	ctrl.handle(splittimer.Event{Type: splittimer.EventTierChange, Tier: splittimer.TierChange{Name: "A", From: splits.TierWarning, To: splits.TierBad}})
	ctrl.handle(splittimer.Event{Type: splittimer.EventTierChange, Tier: splittimer.TierChange{Name: "A", From: splits.TierBad, To: splits.TierNormal}})

	if len(chime.played) != 2 || chime.played[0] != splits.TierWarning || chime.played[1] != splits.TierBad {
		t.Fatalf("played cues: %v", chime.played)
	}
}

func TestUnsupportedSoundFallsBackToSilence(t *testing.T) {
	chime := &recordingChime{err: platform.ErrSoundUnsupported}
	ctrl, _, _ := newTestController(t, chime)

	change := splittimer.TierChange{Name: "A", From: splits.TierNormal, To: splits.TierWarning}
	ctrl.handleTierChange(change)
	ctrl.handleTierChange(change)

	if len(chime.played) != 1 {
		t.Fatalf("unsupported chime should be replaced after first failure, played %d", len(chime.played))
	}
}

func TestProgressEventsReachViews(t *testing.T) {
	ctrl, _, _ := newTestController(t, platform.NewSilentChime())
	view := &recordingView{}
	ctrl.addView(view)

	ctrl.handle(splittimer.Event{Type: splittimer.EventProgress, Sample: splits.Sample{Mode: splits.ModeRunning}})
	ctrl.handle(splittimer.Event{Type: splittimer.EventStateChange, Sample: splits.Sample{Mode: splits.ModePaused}})

	if len(view.samples) != 2 || view.samples[1].Mode != splits.ModePaused {
		t.Fatalf("view samples: %+v", view.samples)
	}
}

func TestExportSkipsUntouchedRun(t *testing.T) {
	ctrl, _, settings := newTestController(t, platform.NewSilentChime())
	if _, ok := ctrl.exportNow(); ok {
		t.Fatalf("untouched run should not export")
	}
	if _, err := os.Stat(settings.ExportDir); !os.IsNotExist(err) {
		t.Fatalf("export directory should not exist, stat err=%v", err)
	}
}

func TestShutdownExportsOnce(t *testing.T) {
	ctrl, clock, settings := newTestController(t, platform.NewSilentChime())
	if err := ctrl.timer.Advance(); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.Forward(10 * time.Second)
	if err := ctrl.timer.Advance(); err != nil {
		t.Fatalf("split: %v", err)
	}
	clock.Forward(15 * time.Second)

	ctrl.shutdown()
	ctrl.shutdown()

	entries, err := os.ReadDir(settings.ExportDir)
	if err != nil {
		t.Fatalf("read export dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one export, got %d", len(entries))
	}
	if !strings.HasSuffix(entries[0].Name(), "_test-run.json") {
		t.Fatalf("export name: %s", entries[0].Name())
	}

	snapshot, err := export.Read(filepath.Join(settings.ExportDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if snapshot.Splits[0].Seconds != 10 || snapshot.Splits[1].Seconds != 15 || snapshot.TotalSeconds != 25 {
		t.Fatalf("snapshot: %+v", snapshot)
	}

	metrics, err := os.ReadFile(settings.MetricsFile)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(metrics), "splittimer_total_seconds 25") {
		t.Fatalf("metrics textfile:\n%s", metrics)
	}
}

func TestApplySettingsMovesExports(t *testing.T) {
	ctrl, _, settings := newTestController(t, platform.NewSilentChime())
	settings.ExportDir = filepath.Join(t.TempDir(), "moved")
	settings.Sound = false
	ctrl.applySettings(settings)

	if ctrl.exporter.Dir() != settings.ExportDir {
		t.Fatalf("export dir not applied: %s", ctrl.exporter.Dir())
	}
}
