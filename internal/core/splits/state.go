package splits

import (
	"errors"
	"fmt"
	"time"

	"splittimer/internal/core/model"
)

var (
	// ErrInvalidSplit indicates a split index outside the run.
	ErrInvalidSplit = errors.New("invalid split index")
	// ErrNotRunning indicates the operation needs a running split.
	ErrNotRunning = errors.New("timer is not running")
	// ErrFinished indicates the run already passed its last split.
	ErrFinished = errors.New("run is finished")
	// ErrInvalidTransition indicates an operation not allowed in the current mode.
	ErrInvalidTransition = errors.New("invalid transition")
)

// Mode is the logical engine mode.
type Mode string

const (
	ModeIdle    Mode = "idle"
	ModeRunning Mode = "running"
	ModePaused  Mode = "paused"
	ModeDone    Mode = "done"
)

// State is an immutable snapshot of a run. Transition methods return a new
// State and leave the receiver untouched.
type State struct {
	names      []string
	elapsed    []time.Duration
	thresholds model.Thresholds
	mode       Mode
	active     int
	startedAt  time.Time
}

// New creates an idle State with every split at zero.
func New(names []string, thresholds model.Thresholds) (State, error) {
	if len(names) == 0 {
		return State{}, model.ErrNoSplits
	}
	return State{
		names:      append([]string(nil), names...),
		elapsed:    make([]time.Duration, len(names)),
		thresholds: thresholds,
		mode:       ModeIdle,
		active:     -1,
	}, nil
}

// Len returns the number of splits.
func (state State) Len() int {
	return len(state.names)
}

// Name returns the display name of a split.
func (state State) Name(index int) string {
	if index < 0 || index >= len(state.names) {
		return ""
	}
	return state.names[index]
}

// Mode returns the current mode.
func (state State) Mode() Mode {
	return state.mode
}

// Active returns the selected split index, or -1 when none is selected.
func (state State) Active() int {
	return state.active
}

// Thresholds returns the tier thresholds of the run.
func (state State) Thresholds() model.Thresholds {
	return state.thresholds
}

// Accumulated returns the folded time of a split, excluding any live interval.
func (state State) Accumulated(index int) time.Duration {
	if index < 0 || index >= len(state.elapsed) {
		return 0
	}
	return state.elapsed[index]
}

// Advance starts the run, moves to the next split, or finishes the run.
// A paused run resumes its selected split without moving on.
func (state State) Advance(now time.Time) (State, error) {
	switch state.mode {
	case ModeIdle:
		if err := state.check(eventStart, ErrInvalidTransition); err != nil {
			return state, err
		}
		next := state.clone()
		next.mode = ModeRunning
		next.active = 0
		next.startedAt = now
		return next, nil
	case ModePaused:
		return state.Resume(now)
	case ModeDone:
		return state, fmt.Errorf("advance: %w", ErrFinished)
	}

	event := eventSplit
	if state.active+1 >= len(state.names) {
		event = eventFinish
	}
	if err := state.check(event, ErrInvalidTransition); err != nil {
		return state, err
	}

	next := state.clone()
	next.fold(now)
	if event == eventFinish {
		next.mode = ModeDone
		next.active = -1
		return next, nil
	}
	next.active++
	next.startedAt = now
	return next, nil
}

// SwitchTo makes index the running split. The previously running split, if
// any, is folded first. Switching is allowed from every mode, including a
// finished run.
func (state State) SwitchTo(index int, now time.Time) (State, error) {
	if index < 0 || index >= len(state.names) {
		return state, fmt.Errorf("switch to %d: %w", index, ErrInvalidSplit)
	}
	if err := state.check(eventSwitch, ErrInvalidTransition); err != nil {
		return state, err
	}

	next := state.clone()
	if next.mode == ModeRunning {
		next.fold(now)
	}
	next.mode = ModeRunning
	next.active = index
	next.startedAt = now
	return next, nil
}

// Pause folds the running split and stops accumulating.
func (state State) Pause(now time.Time) (State, error) {
	if err := state.check(eventPause, ErrNotRunning); err != nil {
		return state, err
	}
	next := state.clone()
	next.fold(now)
	next.mode = ModePaused
	return next, nil
}

// Resume restarts accumulation on the selected split of a paused run.
func (state State) Resume(now time.Time) (State, error) {
	if err := state.check(eventResume, ErrInvalidTransition); err != nil {
		return state, err
	}
	next := state.clone()
	next.mode = ModeRunning
	next.startedAt = now
	return next, nil
}

// Reset returns every split to zero and the run to idle.
func (state State) Reset() State {
	return State{
		names:      state.names,
		elapsed:    make([]time.Duration, len(state.names)),
		thresholds: state.thresholds,
		mode:       ModeIdle,
		active:     -1,
	}
}

func (state State) clone() State {
	next := state
	next.elapsed = append([]time.Duration(nil), state.elapsed...)
	return next
}

// fold adds the live interval to the active split. An interval that would be
// negative, because now is earlier than the recorded start, contributes zero.
func (state *State) fold(now time.Time) {
	state.elapsed[state.active] += liveInterval(state.startedAt, now)
	state.startedAt = time.Time{}
}

func liveInterval(startedAt, now time.Time) time.Duration {
	if startedAt.IsZero() {
		return 0
	}
	interval := now.Sub(startedAt)
	if interval < 0 {
		return 0
	}
	return interval
}
