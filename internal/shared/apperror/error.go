package apperror

import "fmt"

// AppError is an error with a stable machine-readable code and the HTTP
// status it maps to. Sentinels are declared once per feature package and
// compared with errors.Is.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	// Details is rendered as response.error.details, e.g. the required and
	// available days of an INSUFFICIENT_BALANCE.
	Details any
	Err     error
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is compares code and message only, so copies made by WithDetails or
// WithCause still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Code == t.Code && e.Message == t.Message
}

func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithCause keeps err for logging; it never reaches the client.
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}
