package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"splittimer/internal/core/model"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	settingsName = "settings"
	envPrefix    = "SPLITTIMER"

	KeyRunFile        = "run_file"
	KeyExportDir      = "export_dir"
	KeyPollInterval   = "poll_interval"
	KeySound          = "sound"
	KeyWarningSeconds = "warning_seconds"
	KeyBadSeconds     = "bad_seconds"
	KeyMetricsFile    = "metrics_file"
)

// Settings holds application-level preferences. Thresholds set here
// override the ones in the run file.
type Settings struct {
	RunFile        string
	ExportDir      string
	PollInterval   time.Duration
	Sound          bool
	WarningSeconds float64
	BadSeconds     float64
	MetricsFile    string
}

// NewViper prepares a viper instance with defaults, the settings file and
// SPLITTIMER_* environment variables. An explicit configFile must exist;
// the default settings file is optional.
func NewViper(configFile, configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeyRunFile, "order.json")
	v.SetDefault(KeyExportDir, filepath.Join(configDir, "exports"))
	v.SetDefault(KeyPollInterval, "100ms")
	v.SetDefault(KeySound, true)
	v.SetDefault(KeyWarningSeconds, 0.0)
	v.SetDefault(KeyBadSeconds, 0.0)
	v.SetDefault(KeyMetricsFile, "")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(configDir)
		v.SetConfigName(settingsName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}
	return v, nil
}

// Load resolves Settings from v and validates them. Values that do not
// parse as their key's type are errors rather than zero values.
func Load(v *viper.Viper) (Settings, error) {
	var settings Settings
	var err error

	if settings.RunFile, err = cast.ToStringE(v.Get(KeyRunFile)); err != nil {
		return settings, keyError(KeyRunFile, err)
	}
	if settings.ExportDir, err = cast.ToStringE(v.Get(KeyExportDir)); err != nil {
		return settings, keyError(KeyExportDir, err)
	}
	if settings.MetricsFile, err = cast.ToStringE(v.Get(KeyMetricsFile)); err != nil {
		return settings, keyError(KeyMetricsFile, err)
	}
	if settings.PollInterval, err = cast.ToDurationE(v.Get(KeyPollInterval)); err != nil {
		return settings, keyError(KeyPollInterval, err)
	}
	if settings.Sound, err = cast.ToBoolE(v.Get(KeySound)); err != nil {
		return settings, keyError(KeySound, err)
	}
	if settings.WarningSeconds, err = cast.ToFloat64E(v.Get(KeyWarningSeconds)); err != nil {
		return settings, keyError(KeyWarningSeconds, err)
	}
	if settings.BadSeconds, err = cast.ToFloat64E(v.Get(KeyBadSeconds)); err != nil {
		return settings, keyError(KeyBadSeconds, err)
	}

	if settings.PollInterval <= 0 {
		return settings, fmt.Errorf("poll interval must be positive, got %s", settings.PollInterval)
	}
	if err := model.CheckSeconds("warning", settings.WarningSeconds); err != nil {
		return settings, err
	}
	if err := model.CheckSeconds("bad", settings.BadSeconds); err != nil {
		return settings, err
	}
	if settings.ExportDir == "" {
		return settings, fmt.Errorf("export directory is empty")
	}
	return settings, nil
}

func keyError(key string, err error) error {
	return fmt.Errorf("setting %s: %w", key, err)
}

// ApplyThresholds overrides the run thresholds with configured values.
func (settings Settings) ApplyThresholds(def model.RunDefinition) model.RunDefinition {
	if settings.WarningSeconds > 0 {
		def.Thresholds.Warning = model.LimitSeconds(settings.WarningSeconds)
	}
	if settings.BadSeconds > 0 {
		def.Thresholds.Bad = model.LimitSeconds(settings.BadSeconds)
	}
	return def
}

// SaveChanges writes the settings that differ between before and after
// into the settings file at path. Keys already in the file are kept, and
// values that only came from flags, the environment or defaults are not
// written unless they were edited.
func SaveChanges(path string, before, after Settings) error {
	file := viper.New()
	file.SetConfigFile(path)
	if _, err := os.Stat(path); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("read settings file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat settings file: %w", err)
	}

	for key, value := range changedValues(before, after) {
		file.Set(key, value)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := file.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func changedValues(before, after Settings) map[string]any {
	changed := make(map[string]any)
	if before.RunFile != after.RunFile {
		changed[KeyRunFile] = after.RunFile
	}
	if before.ExportDir != after.ExportDir {
		changed[KeyExportDir] = after.ExportDir
	}
	if before.PollInterval != after.PollInterval {
		changed[KeyPollInterval] = after.PollInterval.String()
	}
	if before.Sound != after.Sound {
		changed[KeySound] = after.Sound
	}
	if before.WarningSeconds != after.WarningSeconds {
		changed[KeyWarningSeconds] = after.WarningSeconds
	}
	if before.BadSeconds != after.BadSeconds {
		changed[KeyBadSeconds] = after.BadSeconds
	}
	if before.MetricsFile != after.MetricsFile {
		changed[KeyMetricsFile] = after.MetricsFile
	}
	return changed
}

// SettingsPath returns the default settings file inside configDir.
func SettingsPath(configDir string) string {
	return filepath.Join(configDir, settingsName+".yaml")
}
