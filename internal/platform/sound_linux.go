//go:build linux

package platform

import "splittimer/internal/core/splits"

const freedesktopSounds = "/usr/share/sounds/freedesktop/stereo/"

func newChime() Chime {
	return lookupChime("paplay", map[splits.Tier][]string{
		splits.TierWarning: {freedesktopSounds + "message.oga"},
		splits.TierBad:     {freedesktopSounds + "alarm-clock-elapsed.oga"},
	})
}
