package employeesalary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryProfile holds the monthly compensation of one employee. Amounts are
// in whole currency units with two decimal places.
type SalaryProfile struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID          uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID         uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_salary_profiles_employee"`
	BaseSalary         decimal.Decimal `gorm:"column:base_salary;type:numeric(14,2);not null;default:0"`
	HousingAllowance   decimal.Decimal `gorm:"column:housing_allowance;type:numeric(14,2);not null;default:0"`
	TransportAllowance decimal.Decimal `gorm:"column:transport_allowance;type:numeric(14,2);not null;default:0"`
	OtherAllowances    decimal.Decimal `gorm:"column:other_allowances;type:numeric(14,2);not null;default:0"`
	Deductions         decimal.Decimal `gorm:"column:deductions;type:numeric(14,2);not null;default:0"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at"`
}

func (SalaryProfile) TableName() string {
	return "salary_profiles"
}

// Compensation is the part of a profile payroll reads.
type Compensation struct {
	BaseSalary         decimal.Decimal
	HousingAllowance   decimal.Decimal
	TransportAllowance decimal.Decimal
	OtherAllowances    decimal.Decimal
	Deductions         decimal.Decimal
}

func (p SalaryProfile) Compensation() Compensation {
	return Compensation{
		BaseSalary:         p.BaseSalary,
		HousingAllowance:   p.HousingAllowance,
		TransportAllowance: p.TransportAllowance,
		OtherAllowances:    p.OtherAllowances,
		Deductions:         p.Deductions,
	}
}
