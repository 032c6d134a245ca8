package events

import "time"

const SubstitutionFilledTopic = "leave.substitution.filled.v1"

// SubstitutionFilledEvent fires when a candidate accepts a slot or an admin
// force-assigns one. Consumers use the date to invalidate cached day views.
type SubstitutionFilledEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	LeaveID       string    `json:"leave_id"`
	SubstituteID  string    `json:"substitute_id"`
	Date          string    `json:"date"`
	Slot          int       `json:"slot"`
	ForceAssigned bool      `json:"force_assigned"`
	OccurredAt    time.Time `json:"occurred_at"`
}
