package splits

import (
	"testing"

	"splittimer/internal/core/model"
)

func TestClassify(t *testing.T) {
	both := model.Thresholds{Warning: model.LimitSeconds(90), Bad: model.LimitSeconds(150)}
	warningOnly := model.Thresholds{Warning: model.LimitSeconds(90)}

	tests := []struct {
		name       string
		seconds    float64
		thresholds model.Thresholds
		want       Tier
	}{
		{"below warning", 30, both, TierNormal},
		{"at warning is not above it", 90, both, TierNormal},
		{"above warning", 90.1, both, TierWarning},
		{"at bad is still warning", 150, both, TierWarning},
		{"above bad", 151, both, TierBad},
		{"no thresholds", 10000, model.Thresholds{}, TierNormal},
		{"bad disabled", 10000, warningOnly, TierWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(secs(tt.seconds), tt.thresholds); got != tt.want {
				t.Fatalf("Classify(%v) = %s, want %s", tt.seconds, got, tt.want)
			}
		})
	}
}
