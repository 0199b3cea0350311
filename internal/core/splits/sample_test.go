package splits

import (
	"testing"
	"time"
)

func TestSnapshotTotalIsSumOfRoundedSplits(t *testing.T) {
	sample := Sample{
		Splits: []SplitSample{
			{Index: 0, Name: "A", Elapsed: 400 * time.Microsecond},
			{Index: 1, Name: "B", Elapsed: 400 * time.Microsecond},
			{Index: 2, Name: "C", Elapsed: 400 * time.Microsecond},
		},
		Total: 1200 * time.Microsecond,
	}

	snapshot := sample.Snapshot("tiny")
	var sum float64
	for _, split := range snapshot.Splits {
		sum += split.Seconds
	}
	if snapshot.TotalSeconds != sum {
		t.Fatalf("total %v differs from split sum %v", snapshot.TotalSeconds, sum)
	}
	if snapshot.TotalSeconds != 0 {
		t.Fatalf("sub-millisecond splits should export as 0, got %v", snapshot.TotalSeconds)
	}
}

func TestSnapshotRoundsToMilliseconds(t *testing.T) {
	sample := Sample{
		Splits: []SplitSample{
			{Index: 0, Name: "A", Elapsed: 1500*time.Microsecond + 10*time.Second},
			{Index: 1, Name: "B", Elapsed: 2499 * time.Microsecond},
		},
	}

	snapshot := sample.Snapshot("run")
	if snapshot.Splits[0].Seconds != 10.002 || snapshot.Splits[1].Seconds != 0.002 {
		t.Fatalf("rounded splits: %+v", snapshot.Splits)
	}
	if snapshot.TotalSeconds != 10.004 {
		t.Fatalf("total: got %v want 10.004", snapshot.TotalSeconds)
	}
}
