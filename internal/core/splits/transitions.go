package splits

import (
	"fmt"

	"github.com/looplab/fsm"
)

const (
	eventStart  = "start"
	eventSplit  = "split"
	eventFinish = "finish"
	eventResume = "resume"
	eventSwitch = "switch"
	eventPause  = "pause"
	eventReset  = "reset"
)

var transitions = fsm.Events{
	{Name: eventStart, Src: []string{string(ModeIdle)}, Dst: string(ModeRunning)},
	{Name: eventSplit, Src: []string{string(ModeRunning)}, Dst: string(ModeRunning)},
	{Name: eventFinish, Src: []string{string(ModeRunning)}, Dst: string(ModeDone)},
	{Name: eventResume, Src: []string{string(ModePaused)}, Dst: string(ModeRunning)},
	{Name: eventSwitch, Src: []string{string(ModeIdle), string(ModeRunning), string(ModePaused), string(ModeDone)}, Dst: string(ModeRunning)},
	{Name: eventPause, Src: []string{string(ModeRunning)}, Dst: string(ModePaused)},
	{Name: eventReset, Src: []string{string(ModeIdle), string(ModeRunning), string(ModePaused), string(ModeDone)}, Dst: string(ModeIdle)},
}

// Permits reports whether event is a legal transition out of mode.
func Permits(mode Mode, event string) bool {
	return fsm.NewFSM(string(mode), transitions, nil).Can(event)
}

func (state State) check(event string, reason error) error {
	if !Permits(state.mode, event) {
		return fmt.Errorf("%s while %s: %w", event, state.mode, reason)
	}
	return nil
}
