package tenanterrors

import (
	"net/http"

	"go-hris-payroll/internal/shared/apperror"
)

var (
	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthorized,
		"missing or malformed credential",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"credential is expired or invalid",
		http.StatusForbidden,
	)
	ErrMissingContext = apperror.New(
		apperror.CodeUnauthorized,
		"tenant context is required",
		http.StatusUnauthorized,
	)
)
