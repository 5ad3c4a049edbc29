package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeLeave       = "LEAVE"
	TypeSickLeave   = "SICK_LEAVE"
	TypeResignation = "RESIGNATION"
	TypeNonRenewal  = "NON_RENEWAL"
	TypeLoan        = "LOAN"
	TypeDocument    = "DOCUMENT"
	TypeOther       = "OTHER"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

type Request struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID        `gorm:"column:company_id;type:uuid;not null;index:idx_employee_requests_company_status,priority:1"`
	EmployeeID      uuid.UUID        `gorm:"column:employee_id;type:uuid;not null;index"`
	Type            string           `gorm:"column:type;type:varchar(30);not null"`
	Status          string           `gorm:"column:status;type:varchar(20);not null;default:PENDING;index:idx_employee_requests_company_status,priority:2"`
	StartDate       *time.Time       `gorm:"column:start_date;type:date"`
	EndDate         *time.Time       `gorm:"column:end_date;type:date"`
	Amount          *decimal.Decimal `gorm:"column:amount;type:numeric(14,2)"`
	AttachmentRef   *string          `gorm:"column:attachment_ref;type:varchar(255)"`
	Reason          string           `gorm:"column:reason;type:text"`
	ReviewerID      *uuid.UUID       `gorm:"column:reviewer_id;type:uuid"`
	ReviewerComment *string          `gorm:"column:reviewer_comment;type:text"`
	ReviewedAt      *time.Time       `gorm:"column:reviewed_at;type:timestamptz"`
	CreatedAt       time.Time        `gorm:"column:created_at"`
	UpdatedAt       time.Time        `gorm:"column:updated_at"`
}

func (Request) TableName() string {
	return "employee_requests"
}

// LeaveDays is the inclusive number of calendar days the request covers,
// or 0 when it has no complete date range.
func (r Request) LeaveDays() int {
	if r.StartDate == nil || r.EndDate == nil {
		return 0
	}
	return inclusiveDays(*r.StartDate, *r.EndDate)
}
