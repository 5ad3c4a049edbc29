package attendanceerrors

import (
	"net/http"

	"go-hris-payroll/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeAlreadyCheckedIn,
		"Already checked in for today",
		http.StatusConflict,
	)
	ErrNoOpenSession = apperror.New(
		apperror.CodeNoOpenSession,
		"No open attendance session for today",
		http.StatusConflict,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be 1-12 and year must be between 2000 and 2100",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)
