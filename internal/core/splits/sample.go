package splits

import (
	"math"
	"time"
)

// SplitSample is the reported value of one split at a polling instant.
type SplitSample struct {
	Index   int
	Name    string
	Elapsed time.Duration
	Tier    Tier
	Active  bool
}

// Sample is the read-side view of a State at a given instant.
type Sample struct {
	Splits  []SplitSample
	Total   time.Duration
	Mode    Mode
	Active  int
	Running bool
}

// Sample reports every split at now. While running, the active split
// includes its live interval and the total includes it as well.
func (state State) Sample(now time.Time) Sample {
	sample := Sample{
		Splits:  make([]SplitSample, len(state.names)),
		Mode:    state.mode,
		Active:  state.active,
		Running: state.mode == ModeRunning,
	}
	for index, name := range state.names {
		elapsed := state.elapsed[index]
		if sample.Running && index == state.active {
			elapsed += liveInterval(state.startedAt, now)
		}
		sample.Splits[index] = SplitSample{
			Index:   index,
			Name:    name,
			Elapsed: elapsed,
			Tier:    Classify(elapsed, state.thresholds),
			Active:  index == state.active,
		}
		sample.Total += elapsed
	}
	return sample
}

// SnapshotSplit is one exported split.
type SnapshotSplit struct {
	Label   string  `json:"label"`
	Seconds float64 `json:"seconds"`
}

// Snapshot is the export record of a run.
type Snapshot struct {
	Title        string          `json:"title"`
	Splits       []SnapshotSplit `json:"splits"`
	TotalSeconds float64         `json:"total_seconds"`
	ExportedAt   time.Time       `json:"exported_at"`
}

// Snapshot converts the sample into an export record. Values are rounded
// to milliseconds per split and the total is the sum of the rounded values.
func (sample Sample) Snapshot(title string) Snapshot {
	snapshot := Snapshot{
		Title:  title,
		Splits: make([]SnapshotSplit, len(sample.Splits)),
	}
	var totalMillis int64
	for index, split := range sample.Splits {
		millis := roundMillis(split.Elapsed)
		totalMillis += millis
		snapshot.Splits[index] = SnapshotSplit{
			Label:   split.Name,
			Seconds: float64(millis) / 1000,
		}
	}
	snapshot.TotalSeconds = float64(totalMillis) / 1000
	return snapshot
}

func roundMillis(value time.Duration) int64 {
	return int64(math.Round(float64(value) / float64(time.Millisecond)))
}
