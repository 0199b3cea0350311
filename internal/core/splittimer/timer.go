package splittimer

import (
	"fmt"
	"sync"
	"time"

	"splittimer/internal/core/model"
	"splittimer/internal/core/splits"
)

// DefaultPollInterval is the refresh period of the poll loop.
const DefaultPollInterval = 100 * time.Millisecond

// Clock provides the current time. time.Now carries a monotonic reading,
// so intervals measured with the system clock ignore wall-clock jumps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock is the default Clock.
var SystemClock Clock = systemClock{}

// Config contains runtime options for Timer.
type Config struct {
	PollInterval time.Duration
	Clock        Clock
}

// Timer drives a split run: it serializes user actions and poll ticks,
// tracks the last reported tier of every split and fans events out to
// observers.
type Timer struct {
	mu      sync.Mutex
	title   string
	options Config
	state   splits.State
	tiers   []splits.Tier
	events  []chan Event
	stopCh  chan struct{}
	running bool
}

// New creates a Timer for the run definition.
func New(def model.RunDefinition, options Config) (*Timer, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("validate run: %w", err)
	}
	if options.PollInterval <= 0 {
		options.PollInterval = DefaultPollInterval
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}

	state, err := splits.New(def.Splits, def.Thresholds)
	if err != nil {
		return nil, err
	}

	return &Timer{
		title:   def.Title,
		options: options,
		state:   state,
		tiers:   make([]splits.Tier, state.Len()),
		stopCh:  make(chan struct{}),
	}, nil
}

// Title returns the run title.
func (timer *Timer) Title() string {
	return timer.title
}

// Subscribe registers a new observer channel.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	timer.events = append(timer.events, ch)
	timer.mu.Unlock()
	return ch
}

// Start launches the poll loop.
func (timer *Timer) Start() {
	timer.mu.Lock()
	if timer.running {
		timer.mu.Unlock()
		return
	}
	timer.running = true
	timer.mu.Unlock()

	go timer.run()
}

// Stop terminates the poll loop and closes observers.
func (timer *Timer) Stop() {
	timer.mu.Lock()
	if !timer.running {
		timer.mu.Unlock()
		return
	}
	close(timer.stopCh)
	timer.running = false
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Advance starts the run, moves to the next split or finishes the run.
func (timer *Timer) Advance() error {
	return timer.apply(func(state splits.State, now time.Time) (splits.State, error) {
		return state.Advance(now)
	})
}

// SwitchTo makes index the running split.
func (timer *Timer) SwitchTo(index int) error {
	return timer.apply(func(state splits.State, now time.Time) (splits.State, error) {
		return state.SwitchTo(index, now)
	})
}

// Pause stops accumulating on the running split.
func (timer *Timer) Pause() error {
	return timer.apply(func(state splits.State, now time.Time) (splits.State, error) {
		return state.Pause(now)
	})
}

// Resume restarts the selected split of a paused run.
func (timer *Timer) Resume() error {
	return timer.apply(func(state splits.State, now time.Time) (splits.State, error) {
		return state.Resume(now)
	})
}

// TogglePause pauses a running split or resumes a paused one.
func (timer *Timer) TogglePause() error {
	return timer.apply(func(state splits.State, now time.Time) (splits.State, error) {
		if state.Mode() == splits.ModePaused {
			return state.Resume(now)
		}
		return state.Pause(now)
	})
}

// Reset zeroes every split and returns all tracked tiers to normal
// without emitting tier changes.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	timer.state = timer.state.Reset()
	for index := range timer.tiers {
		timer.tiers[index] = splits.TierNormal
	}
	now := timer.options.Clock.Now()
	timer.emitLocked(Event{
		Type:   EventStateChange,
		Sample: timer.state.Sample(now),
		At:     now,
	})
}

// Poll samples the run, emits a progress event and one tier change event
// for every split whose tier differs from the last poll.
func (timer *Timer) Poll() splits.Sample {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	now := timer.options.Clock.Now()
	sample := timer.state.Sample(now)
	timer.emitLocked(Event{
		Type:   EventProgress,
		Sample: sample,
		At:     now,
	})
	timer.detectTierChangesLocked(sample, now)
	return sample
}

// Sample reports the run without emitting events.
func (timer *Timer) Sample() splits.Sample {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.state.Sample(timer.options.Clock.Now())
}

// Snapshot returns the export record of the run, live progress included.
func (timer *Timer) Snapshot() splits.Snapshot {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	now := timer.options.Clock.Now()
	snapshot := timer.state.Sample(now).Snapshot(timer.title)
	snapshot.ExportedAt = now
	return snapshot
}

func (timer *Timer) apply(transition func(splits.State, time.Time) (splits.State, error)) error {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	now := timer.options.Clock.Now()
	next, err := transition(timer.state, now)
	if err != nil {
		return err
	}
	timer.state = next

	sample := next.Sample(now)
	timer.emitLocked(Event{
		Type:   EventStateChange,
		Sample: sample,
		At:     now,
	})
	timer.detectTierChangesLocked(sample, now)
	return nil
}

func (timer *Timer) detectTierChangesLocked(sample splits.Sample, now time.Time) {
	for _, split := range sample.Splits {
		previous := timer.tiers[split.Index]
		if split.Tier == previous {
			continue
		}
		timer.tiers[split.Index] = split.Tier
		timer.emitLocked(Event{
			Type:   EventTierChange,
			Sample: sample,
			Tier: TierChange{
				Split: split.Index,
				Name:  split.Name,
				From:  previous,
				To:    split.Tier,
			},
			At: now,
		})
	}
}

func (timer *Timer) run() {
	ticker := time.NewTicker(timer.options.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timer.stopCh:
			return
		case <-ticker.C:
			timer.Poll()
		}
	}
}

func (timer *Timer) emitLocked(event Event) {
	for _, ch := range timer.events {
		deliver(ch, event)
	}
}

// deliver sends without blocking. A full buffer drops progress events,
// which the next poll supersedes. Other events make room by discarding
// queued progress, then the oldest remaining events.
func deliver(ch chan Event, event Event) {
	select {
	case ch <- event:
		return
	default:
	}
	if event.Type == EventProgress {
		return
	}

	pending := make([]Event, 0, cap(ch)+1)
drain:
	for {
		select {
		case queued := <-ch:
			if queued.Type != EventProgress {
				pending = append(pending, queued)
			}
		default:
			break drain
		}
	}
	pending = append(pending, event)
	if len(pending) > cap(ch) {
		pending = pending[len(pending)-cap(ch):]
	}
	for _, queued := range pending {
		select {
		case ch <- queued:
		default:
		}
	}
}
