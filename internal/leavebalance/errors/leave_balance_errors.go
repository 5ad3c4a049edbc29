package leavebalanceerrors

import (
	"net/http"

	"go-hris-payroll/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"Insufficient leave balance",
		http.StatusConflict,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"Days must be greater than zero",
		http.StatusBadRequest,
	)
)

// InsufficientDetails is carried in the Details of ErrInsufficientBalance.
type InsufficientDetails struct {
	Required  int `json:"required"`
	Available int `json:"available"`
}

func Insufficient(required, available int) error {
	return ErrInsufficientBalance.WithDetails(InsufficientDetails{
		Required:  required,
		Available: available,
	})
}
