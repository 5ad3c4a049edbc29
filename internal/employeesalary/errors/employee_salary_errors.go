package employeesalaryerrors

import (
	"net/http"

	"go-hris-payroll/internal/shared/apperror"
)

var (
	ErrSalaryProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary profile not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Salary amounts must not be negative",
		http.StatusBadRequest,
	)
)
