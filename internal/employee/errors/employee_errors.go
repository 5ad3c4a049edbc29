package employeeerrors

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
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists in this company",
		http.StatusConflict,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists in this company",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Manager does not exist in this company",
		http.StatusBadRequest,
	)
	ErrSelfManagement = apperror.New(
		apperror.CodeInvalidInput,
		"An employee cannot manage themselves",
		http.StatusBadRequest,
	)
	ErrManagerCycle = apperror.New(
		apperror.CodeConflict,
		"Assigning this manager would create a reporting cycle",
		http.StatusConflict,
	)
	ErrManagerChainTooDeep = apperror.New(
		apperror.CodeConflict,
		"Reporting chain is too deep",
		http.StatusConflict,
	)
)
