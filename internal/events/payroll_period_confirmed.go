package events

import "time"

const (
	PayrollPeriodTopic         = "hr.payroll.period.v1"
	PayrollPeriodConfirmedType = "payroll.period_confirmed"
)

// PayrollPeriodConfirmedEvent is emitted once per committed period.
// TotalAmount is a decimal string.
type PayrollPeriodConfirmedEvent struct {
	EventType     string    `json:"event_type"`
	RunID         string    `json:"run_id"`
	CompanyID     string    `json:"company_id"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	EmployeeCount int       `json:"employee_count"`
	TotalAmount   string    `json:"total_amount"`
	ConfirmedBy   string    `json:"confirmed_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
