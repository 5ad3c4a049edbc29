package employeesalary

import "github.com/shopspring/decimal"

// UpsertSalaryProfileRequest accepts amounts as JSON numbers or strings.
// Omitted allowances and deductions are stored as zero.
type UpsertSalaryProfileRequest struct {
	BaseSalary         *decimal.Decimal `json:"base_salary" binding:"required"`
	HousingAllowance   *decimal.Decimal `json:"housing_allowance"`
	TransportAllowance *decimal.Decimal `json:"transport_allowance"`
	OtherAllowances    *decimal.Decimal `json:"other_allowances"`
	Deductions         *decimal.Decimal `json:"deductions"`
}

type SalaryProfileResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	BaseSalary         decimal.Decimal `json:"base_salary"`
	HousingAllowance   decimal.Decimal `json:"housing_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	OtherAllowances    decimal.Decimal `json:"other_allowances"`
	Deductions         decimal.Decimal `json:"deductions"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}
