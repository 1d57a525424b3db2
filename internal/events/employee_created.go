package events

import "time"

const EmployeeCreatedTopic = "ops.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID int64     `json:"employee_id"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
}
