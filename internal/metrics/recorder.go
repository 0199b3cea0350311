package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"splittimer/internal/core/splits"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder keeps split metrics in a private registry so they can be dumped
// as a node-exporter textfile next to the JSON export.
type Recorder struct {
	registry     *prometheus.Registry
	splitSeconds *prometheus.GaugeVec
	totalSeconds prometheus.Gauge
	tierChanges  *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	recorder := &Recorder{
		registry: prometheus.NewRegistry(),
		splitSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "splittimer_split_seconds",
			Help: "Accumulated seconds per split.",
		}, []string{"split"}),
		totalSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "splittimer_total_seconds",
			Help: "Accumulated seconds over all splits.",
		}),
		tierChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "splittimer_tier_changes_total",
			Help: "Tier transitions per split and target tier.",
		}, []string{"split", "tier"}),
	}
	recorder.registry.MustRegister(recorder.splitSeconds, recorder.totalSeconds, recorder.tierChanges)
	return recorder
}

// Observe records the split values of a snapshot.
func (recorder *Recorder) Observe(snapshot splits.Snapshot) {
	recorder.splitSeconds.Reset()
	for _, split := range snapshot.Splits {
		recorder.splitSeconds.WithLabelValues(split.Label).Set(split.Seconds)
	}
	recorder.totalSeconds.Set(snapshot.TotalSeconds)
}

// CountTierChange records a tier transition of a split.
func (recorder *Recorder) CountTierChange(split string, tier splits.Tier) {
	recorder.tierChanges.WithLabelValues(split, tier.String()).Inc()
}

// WriteTextfile writes every metric in the Prometheus text format.
func (recorder *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, recorder.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
