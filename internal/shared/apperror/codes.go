package apperror

const (
	// 4xx
	CodeInvalidInput   = "INVALID_INPUT"
	CodeValidation     = "VALIDATION_ERROR"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeInvalidState   = "INVALID_STATE"
	CodeTooManyRequest = "TOO_MANY_REQUESTS"

	// 5xx
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
