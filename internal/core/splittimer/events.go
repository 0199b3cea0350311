package splittimer

import (
	"time"

	"splittimer/internal/core/splits"
)

// EventType defines the type of Timer event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventTierChange  EventType = "tier_change"
)

// TierChange describes a split crossing into a different tier.
type TierChange struct {
	Split int
	Name  string
	From  splits.Tier
	To    splits.Tier
}

// Event represents a Timer update for observers.
type Event struct {
	Type   EventType
	Sample splits.Sample
	Tier   TierChange
	At     time.Time
}
