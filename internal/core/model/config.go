package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrNoSplits indicates a run definition without any splits.
var ErrNoSplits = errors.New("run has no splits")

// MaxLimitSeconds is the largest threshold a time.Duration can hold.
const MaxLimitSeconds = float64(math.MaxInt64 / int64(time.Second))

// Limit defines a single optional duration threshold.
type Limit struct {
	After   time.Duration
	Enabled bool
}

// LimitSeconds builds an enabled Limit from a number of seconds.
// Zero or negative values produce a disabled Limit. Values beyond
// MaxLimitSeconds saturate; CheckSeconds rejects them up front.
func LimitSeconds(seconds float64) Limit {
	if seconds <= 0 || math.IsNaN(seconds) {
		return Limit{}
	}
	if seconds > MaxLimitSeconds {
		return Limit{After: time.Duration(math.MaxInt64), Enabled: true}
	}
	return Limit{After: time.Duration(seconds * float64(time.Second)), Enabled: true}
}

// CheckSeconds reports whether seconds is usable as a threshold. Zero
// means disabled.
func CheckSeconds(name string, seconds float64) error {
	switch {
	case math.IsNaN(seconds):
		return fmt.Errorf("%s threshold is not a number", name)
	case seconds < 0:
		return fmt.Errorf("%s threshold must not be negative, got %g", name, seconds)
	case seconds > MaxLimitSeconds:
		return fmt.Errorf("%s threshold %g exceeds the maximum of %.0f seconds", name, seconds, MaxLimitSeconds)
	}
	return nil
}

// Thresholds apply uniformly to every split of a run.
type Thresholds struct {
	Warning Limit
	Bad     Limit
}

// RunDefinition is the startup record describing one timed run.
type RunDefinition struct {
	Title      string
	Splits     []string
	Thresholds Thresholds
}

// Validate reports configuration errors that must stop startup.
func (def RunDefinition) Validate() error {
	if len(def.Splits) == 0 {
		return ErrNoSplits
	}
	for index, name := range def.Splits {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("split %d: name is empty", index+1)
		}
	}
	if def.Thresholds.Warning.Enabled && def.Thresholds.Warning.After < 0 {
		return fmt.Errorf("warning threshold is negative")
	}
	if def.Thresholds.Bad.Enabled && def.Thresholds.Bad.After < 0 {
		return fmt.Errorf("bad threshold is negative")
	}
	return nil
}
