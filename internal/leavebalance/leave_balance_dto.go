package leavebalance

type BalanceResponse struct {
	EmployeeID   string `json:"employee_id"`
	LeaveBalance int    `json:"leave_balance"`
}
