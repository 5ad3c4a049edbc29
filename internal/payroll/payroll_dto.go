package payroll

import "github.com/shopspring/decimal"

type PreviewRequest struct {
	Month       int  `json:"month" binding:"required,min=1,max=12"`
	Year        int  `json:"year" binding:"required,min=2000,max=2100"`
	WorkingDays *int `json:"working_days" binding:"omitempty,min=1,max=31"`
}

// ConfirmLineItem carries the adjustments an admin may make per employee.
// Base salary and attended days always come from storage.
type ConfirmLineItem struct {
	EmployeeID         string           `json:"employee_id" binding:"required,uuid"`
	WorkingDays        *int             `json:"working_days" binding:"omitempty,min=1,max=31"`
	HousingAllowance   *decimal.Decimal `json:"housing_allowance"`
	TransportAllowance *decimal.Decimal `json:"transport_allowance"`
	OtherAllowances    *decimal.Decimal `json:"other_allowances"`
	Deductions         *decimal.Decimal `json:"deductions"`
}

type ConfirmRequest struct {
	Month       int               `json:"month" binding:"required,min=1,max=12"`
	Year        int               `json:"year" binding:"required,min=2000,max=2100"`
	WorkingDays *int              `json:"working_days" binding:"omitempty,min=1,max=31"`
	LineItems   []ConfirmLineItem `json:"line_items" binding:"omitempty,dive"`
}

type LineItemResponse struct {
	EmployeeID       string          `json:"employee_id"`
	EmployeeNumber   string          `json:"employee_number,omitempty"`
	FullName         string          `json:"full_name,omitempty"`
	WorkingDays      int             `json:"working_days"`
	AttendedDays     int             `json:"attended_days"`
	AbsentDays       int             `json:"absent_days"`
	BasicPay         decimal.Decimal `json:"basic_pay"`
	TotalAllowances  decimal.Decimal `json:"total_allowances"`
	AbsenceDeduction decimal.Decimal `json:"absence_deduction"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	NetSalary        decimal.Decimal `json:"net_salary"`
	Eligible         bool            `json:"eligible"`
	Flags            []string        `json:"flags,omitempty"`
}

type PreviewResponse struct {
	Month         int                `json:"month"`
	Year          int                `json:"year"`
	WorkingDays   int                `json:"working_days"`
	LineItems     []LineItemResponse `json:"line_items"`
	EligibleCount int                `json:"eligible_count"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
}

type SkippedItem struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type ConfirmResponse struct {
	RunID         string          `json:"run_id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	EmployeeCount int             `json:"employee_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Skipped       []SkippedItem   `json:"skipped"`
}

type HistoryResponse struct {
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	EmployeeCount int             `json:"employee_count"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	ConfirmedAt   string          `json:"confirmed_at"`
}

type PeriodItemResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	FullName         string          `json:"full_name,omitempty"`
	WorkingDays      int             `json:"working_days"`
	AttendedDays     int             `json:"attended_days"`
	AbsentDays       int             `json:"absent_days"`
	BasicPay         decimal.Decimal `json:"basic_pay"`
	TotalAllowances  decimal.Decimal `json:"total_allowances"`
	AbsenceDeduction decimal.Decimal `json:"absence_deduction"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	NetSalary        decimal.Decimal `json:"net_salary"`
	PaymentDate      string          `json:"payment_date"`
	Status           string          `json:"status"`
}
