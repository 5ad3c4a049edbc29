package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RunStatusCommitted = "COMMITTED"

	ItemStatusPending   = "pending"
	ItemStatusPaid      = "paid"
	ItemStatusCancelled = "cancelled"
)

// PayrollRun is the period lock: at most one COMMITTED run per
// (company, year, month), enforced by a partial unique index.
type PayrollRun struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_runs_period,priority:1,where:status = 'COMMITTED'"`
	PeriodYear    int             `gorm:"not null;uniqueIndex:uq_payroll_runs_period,priority:2"`
	PeriodMonth   int             `gorm:"not null;uniqueIndex:uq_payroll_runs_period,priority:3"`
	Status        string          `gorm:"type:varchar(20);not null;default:'COMMITTED'"`
	WorkingDays   int             `gorm:"not null"`
	EmployeeCount int             `gorm:"not null"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	ConfirmedBy   uuid.UUID       `gorm:"type:uuid;not null"`
	ConfirmedAt   time.Time       `gorm:"type:timestamptz;not null"`
	CreatedAt     time.Time
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

// PayrollLineItem is written once at confirm time and never updated.
type PayrollLineItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_line_items_employee_period,priority:1"`
	EmployeeID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_line_items_employee_period,priority:2"`
	PeriodYear       int             `gorm:"not null;uniqueIndex:uq_payroll_line_items_employee_period,priority:3"`
	PeriodMonth      int             `gorm:"not null;uniqueIndex:uq_payroll_line_items_employee_period,priority:4"`
	WorkingDays      int             `gorm:"not null"`
	AttendedDays     int             `gorm:"not null"`
	AbsentDays       int             `gorm:"not null"`
	BasicPay         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalAllowances  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	AbsenceDeduction decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalDeductions  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	NetSalary        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentDate      time.Time       `gorm:"type:date;not null"`
	Status           string          `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt        time.Time

	Employee *PayrollEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (PayrollLineItem) TableName() string {
	return "payroll_line_items"
}

// PayrollEmployee is the read-only view of employees the coordinator needs.
type PayrollEmployee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	FullName       string    `gorm:"column:full_name"`
}

func (PayrollEmployee) TableName() string {
	return "employees"
}
