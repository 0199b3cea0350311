package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"splittimer/internal/core/splits"

	"github.com/olekukonko/tablewriter"
)

const fileTimeLayout = "2006-01-02_15-04-05"

// Exporter writes run snapshots as JSON files into a directory.
type Exporter struct {
	dir string
}

// New creates an Exporter targeting dir.
func New(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Dir returns the export directory.
func (exporter *Exporter) Dir() string {
	return exporter.dir
}

// SetDir changes the export directory.
func (exporter *Exporter) SetDir(dir string) {
	exporter.dir = dir
}

// Write stores the snapshot and returns the written path.
func (exporter *Exporter) Write(snapshot splits.Snapshot) (string, error) {
	if exporter.dir == "" {
		return "", fmt.Errorf("export snapshot: directory is empty")
	}
	if err := os.MkdirAll(exporter.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	at := snapshot.ExportedAt
	if at.IsZero() {
		at = time.Now()
		snapshot.ExportedAt = at
	}

	serialized, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	path := filepath.Join(exporter.dir, FileName(at, snapshot.Title))
	if err := os.WriteFile(path, append(serialized, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// Read loads a snapshot written by Write.
func Read(path string) (splits.Snapshot, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return splits.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snapshot splits.Snapshot
	if err := json.Unmarshal(rawData, &snapshot); err != nil {
		return splits.Snapshot{}, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return snapshot, nil
}

// FileName derives the export file name from the local time and the title.
func FileName(at time.Time, title string) string {
	name := at.Format(fileTimeLayout)
	if slug := slugify(title); slug != "" {
		name += "_" + slug
	}
	return name + ".json"
}

// WriteTable renders the snapshot as a text table.
func WriteTable(w io.Writer, snapshot splits.Snapshot) error {
	if snapshot.Title != "" {
		if _, err := fmt.Fprintln(w, snapshot.Title); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Split", "Time", "Seconds")
	for index, split := range snapshot.Splits {
		table.Append([]string{
			fmt.Sprintf("%d", index+1),
			split.Label,
			FormatClock(secondsToDuration(split.Seconds)),
			fmt.Sprintf("%.2f", split.Seconds),
		})
	}
	table.Append([]string{
		"",
		"Total",
		FormatClock(secondsToDuration(snapshot.TotalSeconds)),
		fmt.Sprintf("%.2f", snapshot.TotalSeconds),
	})
	return table.Render()
}

// FormatClock renders a duration as MM:SS.D, truncated to deciseconds.
// Hours roll into the minutes field.
func FormatClock(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	deciseconds := int64(value / (100 * time.Millisecond))
	minutes := deciseconds / 600
	seconds := (deciseconds / 10) % 60
	return fmt.Sprintf("%02d:%02d.%d", minutes, seconds, deciseconds%10)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func slugify(title string) string {
	var builder strings.Builder
	dash := false
	for _, r := range strings.TrimSpace(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			builder.WriteRune(unicode.ToLower(r))
			dash = false
		case !dash && builder.Len() > 0:
			builder.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(builder.String(), "-")
}
