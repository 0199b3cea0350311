package export

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"splittimer/internal/core/splits"
)

func sampleSnapshot() splits.Snapshot {
	return splits.Snapshot{
		Title: "Leg Day",
		Splits: []splits.SnapshotSplit{
			{Label: "A", Seconds: 10},
			{Label: "B", Seconds: 15},
			{Label: "C", Seconds: 3},
		},
		TotalSeconds: 28,
		ExportedAt:   time.Date(2025, 3, 1, 9, 5, 7, 0, time.UTC),
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 5, 7, 0, time.UTC)
	tests := []struct {
		title string
		want  string
	}{
		{"Leg Day", "2025-03-01_09-05-07_leg-day.json"},
		{"  a/b\\c  ", "2025-03-01_09-05-07_a-b-c.json"},
		{"", "2025-03-01_09-05-07.json"},
		{"!!!", "2025-03-01_09-05-07.json"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := FileName(at, tt.title); got != tt.want {
				t.Fatalf("FileName(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestWriteAndRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	exporter := New(dir)
	snapshot := sampleSnapshot()

	path, err := exporter.Write(snapshot)
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if filepath.Base(path) != "2025-03-01_09-05-07_leg-day.json" {
		t.Fatalf("unexpected path %s", path)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if !reflect.DeepEqual(got, snapshot) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, snapshot)
	}
}

func TestWriteRequiresDirectory(t *testing.T) {
	if _, err := New("").Write(sampleSnapshot()); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}

func TestWriteTable(t *testing.T) {
	var buffer bytes.Buffer
	if err := WriteTable(&buffer, sampleSnapshot()); err != nil {
		t.Fatalf("WriteTable error: %v", err)
	}
	output := buffer.String()
	for _, want := range []string{"Leg Day", "00:10.0", "00:15.0", "00:28.0", "28.00"} {
		if !strings.Contains(output, want) {
			t.Fatalf("table missing %q:\n%s", want, output)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		value time.Duration
		want  string
	}{
		{0, "00:00.0"},
		{-time.Second, "00:00.0"},
		{1234 * time.Millisecond, "00:01.2"},
		{59990 * time.Millisecond, "00:59.9"},
		{61*time.Second + 500*time.Millisecond, "01:01.5"},
		{2 * time.Hour, "120:00.0"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.value); got != tt.want {
			t.Fatalf("FormatClock(%s) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
