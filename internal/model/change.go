package model

import "time"

// ChangeKind is the type of a change event
type ChangeKind string

const (
	ChangeNewConference   ChangeKind = "new_conference"
	ChangeDeadlineChanged ChangeKind = "deadline_changed"
	ChangeURLChanged      ChangeKind = "url_changed"
	ChangeUnchanged       ChangeKind = "unchanged"
)

// ChangeDirection describes how a deadline moved
type ChangeDirection string

const (
	DirectionNone         ChangeDirection = ""
	DirectionExtended     ChangeDirection = "extended"
	DirectionMovedEarlier ChangeDirection = "moved_earlier"
	DirectionAnnounced    ChangeDirection = "announced" // TBD became a date
)

// ChangeEvent is produced per conference key per run and appended to the change log
type ChangeEvent struct {
	Key        ConferenceKey   `json:"key"`
	Kind       ChangeKind      `json:"kind"`
	Old        string          `json:"old,omitempty"`
	New        string          `json:"new,omitempty"`
	Direction  ChangeDirection `json:"direction,omitempty"`
	DetectedAt time.Time       `json:"detected_at"`
}

// Loggable reports whether the event belongs in the change log
func (e ChangeEvent) Loggable() bool {
	return e.Kind != ChangeUnchanged
}
