package platform

import (
	"errors"
	"os/exec"

	"splittimer/internal/core/splits"
)

// ErrSoundUnsupported indicates no audio player is available on this system.
var ErrSoundUnsupported = errors.New("sound unsupported")

// Chime plays an audible cue when a split enters a tier.
type Chime interface {
	Play(tier splits.Tier) error
}

// NewChime returns the platform chime, or one reporting ErrSoundUnsupported
// when no player is found.
func NewChime() Chime {
	return newChime()
}

// NewSilentChime returns a chime that never plays anything.
func NewSilentChime() Chime {
	return silentChime{}
}

type silentChime struct{}

func (silentChime) Play(splits.Tier) error {
	return nil
}

type unsupportedChime struct{}

func (unsupportedChime) Play(splits.Tier) error {
	return ErrSoundUnsupported
}

// commandChime runs an external player with per-tier arguments. The player
// is started in the background and reaped by its own goroutine.
type commandChime struct {
	path string
	args map[splits.Tier][]string
}

func (chime *commandChime) Play(tier splits.Tier) error {
	args, ok := chime.args[tier]
	if !ok {
		return nil
	}
	command := exec.Command(chime.path, args...)
	if err := command.Start(); err != nil {
		return err
	}
	go func() {
		_ = command.Wait()
	}()
	return nil
}

func lookupChime(player string, args map[splits.Tier][]string) Chime {
	path, err := exec.LookPath(player)
	if err != nil {
		return unsupportedChime{}
	}
	return &commandChime{path: path, args: args}
}
