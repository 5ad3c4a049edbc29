package requesterrors

import (
	"net/http"

	"go-hris-payroll/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Request not found",
		http.StatusNotFound,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidTransition,
		"Request can no longer change status",
		http.StatusConflict,
	)
	ErrRequestLocked = apperror.New(
		apperror.CodeRequestLocked,
		"Only pending requests can be edited",
		http.StatusConflict,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"Only the requesting employee can change this request",
		http.StatusForbidden,
	)
	ErrSelfReview = apperror.New(
		apperror.CodeForbidden,
		"Reviewers cannot decide their own request",
		http.StatusForbidden,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal to end_date",
		http.StatusBadRequest,
	)
	ErrDateRangeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"start_date and end_date are required for leave requests",
		http.StatusBadRequest,
	)
	ErrAmountRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A positive amount is required for loan requests",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
)
