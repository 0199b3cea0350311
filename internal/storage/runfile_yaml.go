package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"splittimer/internal/core/model"

	"gopkg.in/yaml.v3"
)

type yamlSplit struct {
	Name string `yaml:"name"`
}

// yamlRun accepts both the YAML layout and the plain JSON order file,
// since JSON documents are valid YAML.
type yamlRun struct {
	Name           string      `yaml:"name"`
	Splits         []yamlSplit `yaml:"splits"`
	WarningSeconds float64     `yaml:"warning_seconds,omitempty"`
	BadSeconds     float64     `yaml:"bad_seconds,omitempty"`
}

// LoadRun reads a run definition and validates it.
func LoadRun(path string) (model.RunDefinition, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return model.RunDefinition{}, fmt.Errorf("read run file: %w", err)
	}

	var fileData yamlRun
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return model.RunDefinition{}, fmt.Errorf("parse run file %s: %w", path, err)
	}
	if err := model.CheckSeconds("warning", fileData.WarningSeconds); err != nil {
		return model.RunDefinition{}, fmt.Errorf("parse run file %s: %w", path, err)
	}
	if err := model.CheckSeconds("bad", fileData.BadSeconds); err != nil {
		return model.RunDefinition{}, fmt.Errorf("parse run file %s: %w", path, err)
	}

	def := model.RunDefinition{
		Title: strings.TrimSpace(fileData.Name),
		Thresholds: model.Thresholds{
			Warning: model.LimitSeconds(fileData.WarningSeconds),
			Bad:     model.LimitSeconds(fileData.BadSeconds),
		},
	}
	if def.Title == "" {
		def.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	for _, split := range fileData.Splits {
		def.Splits = append(def.Splits, strings.TrimSpace(split.Name))
	}

	if err := def.Validate(); err != nil {
		return model.RunDefinition{}, fmt.Errorf("run file %s: %w", path, err)
	}
	return def, nil
}

// SaveRun writes a run definition as YAML.
func SaveRun(path string, def model.RunDefinition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("save run file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create run directory: %w", err)
	}

	fileData := yamlRun{Name: def.Title}
	for _, name := range def.Splits {
		fileData.Splits = append(fileData.Splits, yamlSplit{Name: name})
	}
	if def.Thresholds.Warning.Enabled {
		fileData.WarningSeconds = def.Thresholds.Warning.After.Seconds()
	}
	if def.Thresholds.Bad.Enabled {
		fileData.BadSeconds = def.Thresholds.Bad.After.Seconds()
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal run yaml: %w", err)
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write run file: %w", err)
	}
	return nil
}

// TemplateRun is the run written by the init command.
func TemplateRun() model.RunDefinition {
	return model.RunDefinition{
		Title:  "Practice",
		Splits: []string{"Warm-up", "Main set", "Cool-down"},
		Thresholds: model.Thresholds{
			Warning: model.LimitSeconds(90),
			Bad:     model.LimitSeconds(150),
		},
	}
}
