package splits

import (
	"time"

	"splittimer/internal/core/model"
)

// Tier classifies a split duration against the run thresholds.
type Tier int

const (
	TierNormal Tier = iota
	TierWarning
	TierBad
)

func (tier Tier) String() string {
	switch tier {
	case TierWarning:
		return "warning"
	case TierBad:
		return "bad"
	default:
		return "normal"
	}
}

// Classify returns Bad above the bad limit, Warning above the warning limit
// and Normal otherwise. Disabled limits never match.
func Classify(elapsed time.Duration, thresholds model.Thresholds) Tier {
	if thresholds.Bad.Enabled && elapsed > thresholds.Bad.After {
		return TierBad
	}
	if thresholds.Warning.Enabled && elapsed > thresholds.Warning.After {
		return TierWarning
	}
	return TierNormal
}
