package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultLeaveBalance = 21

type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_employees_company_number,priority:1;uniqueIndex:uq_employees_company_email,priority:1"`
	EmployeeNumber string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_company_number,priority:2"`
	FullName       string     `gorm:"type:varchar(150);not null"`
	Email          string     `gorm:"type:varchar(150);not null;uniqueIndex:uq_employees_company_email,priority:2"`
	Phone          *string    `gorm:"type:varchar(30)"`
	HireDate       *time.Time `gorm:"type:date"`
	ManagerID      *uuid.UUID `gorm:"type:uuid;index"`
	LeaveBalance   int        `gorm:"not null;default:21;check:chk_employees_leave_balance,leave_balance >= 0"`
	IsActive       bool       `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
