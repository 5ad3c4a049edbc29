package events

import "time"

const (
	RequestLifecycleTopic    = "hr.request.lifecycle.v1"
	RequestStatusChangedType = "request.status_changed"
)

type RequestStatusChangedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	CompanyID   string    `json:"company_id"`
	EmployeeID  string    `json:"employee_id"`
	RequestType string    `json:"request_type"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	ReviewerID  string    `json:"reviewer_id,omitempty"`
	LeaveDays   int       `json:"leave_days,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
