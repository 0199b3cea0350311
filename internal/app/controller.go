package app

import (
	"errors"
	"log"
	"sync"

	"splittimer/internal/config"
	"splittimer/internal/core/splits"
	"splittimer/internal/core/splittimer"
	"splittimer/internal/export"
	"splittimer/internal/metrics"
	"splittimer/internal/platform"
)

type renderer interface {
	Render(sample splits.Sample)
}

// controller connects timer events to the presentation and side effects.
// Export, sound and metrics failures are logged and never stop the timer.
type controller struct {
	mu          sync.Mutex
	timer       *splittimer.Timer
	exporter    *export.Exporter
	recorder    *metrics.Recorder
	chime       platform.Chime
	metricsFile string
	views       []renderer
	dispatch    func(func())
	exportOnce  sync.Once
}

func newController(timer *splittimer.Timer, settings config.Settings, chime platform.Chime, dispatch func(func())) *controller {
	return &controller{
		timer:       timer,
		exporter:    export.New(settings.ExportDir),
		recorder:    metrics.NewRecorder(),
		chime:       chime,
		metricsFile: settings.MetricsFile,
		dispatch:    dispatch,
	}
}

func (ctrl *controller) addView(view renderer) {
	ctrl.views = append(ctrl.views, view)
}

// consume handles events until the timer closes the channel.
func (ctrl *controller) consume(events <-chan splittimer.Event) {
	for event := range events {
		ctrl.handle(event)
	}
}

func (ctrl *controller) handle(event splittimer.Event) {
	switch event.Type {
	case splittimer.EventProgress, splittimer.EventStateChange:
		sample := event.Sample
		ctrl.dispatch(func() {
			for _, view := range ctrl.views {
				view.Render(sample)
			}
		})
	case splittimer.EventTierChange:
		ctrl.handleTierChange(event.Tier)
	}
}

func (ctrl *controller) handleTierChange(change splittimer.TierChange) {
	ctrl.recorder.CountTierChange(change.Name, change.To)
	if change.To <= change.From {
		return
	}

	ctrl.mu.Lock()
	chime := ctrl.chime
	ctrl.mu.Unlock()

	err := chime.Play(change.To)
	if err == nil {
		return
	}
	if errors.Is(err, platform.ErrSoundUnsupported) {
		log.Printf("sound: %v, continuing silently", err)
		ctrl.setChime(platform.NewSilentChime())
		return
	}
	log.Printf("sound: play %s cue for %q: %v", change.To, change.Name, err)
}

func (ctrl *controller) setChime(chime platform.Chime) {
	ctrl.mu.Lock()
	ctrl.chime = chime
	ctrl.mu.Unlock()
}

// applySettings takes over preferences that can change while running.
func (ctrl *controller) applySettings(settings config.Settings) {
	ctrl.mu.Lock()
	ctrl.exporter.SetDir(settings.ExportDir)
	ctrl.metricsFile = settings.MetricsFile
	ctrl.mu.Unlock()
	ctrl.setChime(selectChime(settings.Sound))
}

// exportNow writes the current snapshot. An untouched run is skipped.
func (ctrl *controller) exportNow() (string, bool) {
	snapshot := ctrl.timer.Snapshot()
	if ctrl.timer.Sample().Mode == splits.ModeIdle && snapshot.TotalSeconds == 0 {
		log.Printf("export: nothing timed yet, skipping")
		return "", false
	}

	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	path, err := ctrl.exporter.Write(snapshot)
	if err != nil {
		log.Printf("export: %v", err)
		return "", false
	}
	log.Printf("export: wrote %s", path)

	if ctrl.metricsFile != "" {
		ctrl.recorder.Observe(snapshot)
		if err := ctrl.recorder.WriteTextfile(ctrl.metricsFile); err != nil {
			log.Printf("export: %v", err)
		}
	}
	return path, true
}

// shutdown stops the poll loop and exports once.
func (ctrl *controller) shutdown() {
	ctrl.exportOnce.Do(func() {
		ctrl.timer.Stop()
		ctrl.exportNow()
	})
}

// report logs a rejected user action; the state is unchanged in that case.
func report(action string, err error) {
	if err != nil {
		log.Printf("%s: %v", action, err)
	}
}

func selectChime(enabled bool) platform.Chime {
	if !enabled {
		return platform.NewSilentChime()
	}
	return platform.NewChime()
}
