package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeRateLimited  = "RATE_LIMITED"

	CodeIdempotencyKeyReused = "IDEMPOTENCY_KEY_REUSED"

	// Domain conflicts (409)
	CodeAlreadyCheckedIn       = "ALREADY_CHECKED_IN"
	CodeNoOpenSession          = "NO_OPEN_SESSION"
	CodePeriodAlreadyProcessed = "PERIOD_ALREADY_PROCESSED"
	CodeInsufficientBalance    = "INSUFFICIENT_BALANCE"
	CodeInvalidTransition      = "INVALID_TRANSITION"
	CodeRequestLocked          = "REQUEST_LOCKED"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
