package employee

type CreateEmployeeRequest struct {
	FullName     string  `json:"full_name" binding:"required,max=150"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        *string `json:"phone" binding:"omitempty,max=30"`
	HireDate     string  `json:"hire_date"`
	ManagerID    *string `json:"manager_id" binding:"omitempty,uuid"`
	LeaveBalance *int    `json:"leave_balance" binding:"omitempty,min=0,max=365"`
}

// AssignManagerRequest clears the manager when ManagerID is null.
type AssignManagerRequest struct {
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	HireDate       *string `json:"hire_date,omitempty"`
	ManagerID      *string `json:"manager_id,omitempty"`
	LeaveBalance   int     `json:"leave_balance"`
	IsActive       bool    `json:"is_active"`
}
