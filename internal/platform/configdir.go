package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the per-application configuration directory inside the
// OS-standard location, falling back to a home-relative path.
func ConfigDir(appName string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		return "", fmt.Errorf("get config dir: app name is empty")
	}

	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, name), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return filepath.Join(fallbackConfigDir(homeDir), name), nil
}
