//go:build windows

package platform

import "splittimer/internal/core/splits"

func newChime() Chime {
	return lookupChime("powershell", map[splits.Tier][]string{
		splits.TierWarning: {"-NoProfile", "-Command", "[System.Media.SystemSounds]::Asterisk.Play()"},
		splits.TierBad:     {"-NoProfile", "-Command", "[System.Media.SystemSounds]::Hand.Play()"},
	})
}
