package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrForbidden    = New(CodeForbidden, "Your role does not allow this action", http.StatusForbidden)
	ErrNotFound     = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrInvalidInput = New(CodeInvalidInput, "The provided input is invalid", http.StatusBadRequest)
	ErrInternal     = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
)

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, field+" is required", http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is invalid", field), http.StatusBadRequest)
}
