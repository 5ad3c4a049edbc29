package payrollerrors

import (
	"net/http"

	"go-hris-payroll/internal/shared/apperror"
)

var (
	ErrPeriodAlreadyProcessed = apperror.New(
		apperror.CodePeriodAlreadyProcessed,
		"payroll for this period has already been processed",
		http.StatusConflict,
	)
	ErrPeriodNotProcessed = apperror.New(
		apperror.CodeNotFound,
		"payroll for this period has not been processed",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 and year 2000-2100",
		http.StatusBadRequest,
	)
	ErrInvalidWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"working_days must be between 1 and the number of days in the month",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrDuplicateLineItem = apperror.New(
		apperror.CodeInvalidInput,
		"each employee may appear only once in line_items",
		http.StatusBadRequest,
	)
	ErrInvalidMoneyValue = apperror.New(
		apperror.CodeInvalidInput,
		"salary component values cannot be negative",
		http.StatusBadRequest,
	)
	ErrNothingToConfirm = apperror.New(
		apperror.CodeInvalidInput,
		"no line item has a positive net salary",
		http.StatusBadRequest,
	)
)
