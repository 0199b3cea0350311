//go:build darwin

package platform

import "splittimer/internal/core/splits"

func newChime() Chime {
	return lookupChime("afplay", map[splits.Tier][]string{
		splits.TierWarning: {"/System/Library/Sounds/Glass.aiff"},
		splits.TierBad:     {"/System/Library/Sounds/Basso.aiff"},
	})
}
