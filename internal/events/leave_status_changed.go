package events

import "time"

const LeaveLifecycleTopic = "leave.request.lifecycle.v1"

type LeaveStatusChangedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	LeaveID       string    `json:"leave_id"`
	RequestNumber string    `json:"request_number"`
	FacultyID     string    `json:"faculty_id"`
	LeaveType     string    `json:"leave_type"`
	Status        string    `json:"status"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	OccurredAt    time.Time `json:"occurred_at"`
}
