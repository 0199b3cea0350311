//go:build !linux && !darwin && !windows

package platform

func newChime() Chime {
	return unsupportedChime{}
}
