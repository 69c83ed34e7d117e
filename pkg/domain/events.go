package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTourStart  EventType = "tour_start"
	EventStepShown  EventType = "step_shown"
	EventStepSkip   EventType = "step_skipped"
	EventTourFinish EventType = "tour_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	TourID    string    `json:"tour_id,omitempty"`
}

// TourEvent marks the start or end of a tour.
type TourEvent struct {
	EventBase
	Steps int `json:"steps"`
	// Index is the step the tour ended on (IndexBeforeStart when it ran off an end).
	Index int `json:"index"`
	// Completed is set when the tour finished by moving past its last step.
	Completed bool `json:"completed,omitempty"`
}

// StepEvent reports a step that was shown or skipped.
type StepEvent struct {
	EventBase
	Index     int        `json:"index"`
	Selector  string     `json:"selector"`
	Placement *Placement `json:"placement,omitempty"`
}

// LifecycleHooks defines callbacks for guide observability.
// Hooks run while the controller holds its lock and must not call back into it.
type LifecycleHooks struct {
	OnTourStart   func(context.Context, *TourEvent)
	OnStepShown   func(context.Context, *StepEvent)
	OnStepSkipped func(context.Context, *StepEvent)
	OnTourFinish  func(context.Context, *TourEvent)
}
