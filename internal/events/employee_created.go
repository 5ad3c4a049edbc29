package events

import "time"

const (
	EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"
	EmployeeCreatedType    = "employee.created"
)

type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	EmployeeID     string    `json:"employee_id"`
	CompanyID      string    `json:"company_id"`
	EmployeeNumber string    `json:"employee_number"`
	OccurredAt     time.Time `json:"occurred_at"`
}
