package dto

import "net/http"

// Error codes produced by the API. Domain errors carry their own codes;
// this package maps every code to an HTTP status.
const (
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeNotClockedIn       = "NOT_CLOCKED_IN"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInvalidState       = "INVALID_STATE"
	ErrCodeProviderError      = "PROVIDER_ERROR"
	ErrCodeEmailFailed        = "EMAIL_FAILED"
)

// statusByCode maps error codes to HTTP status codes. Domain validation
// codes all start with INVALID_ and fall through to 400.
var statusByCode = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeNotClockedIn:       http.StatusNotFound,
	ErrCodeAlreadyExists:      http.StatusConflict,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeProviderError:      http.StatusBadGateway,
	ErrCodeEmailFailed:        http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for an error code. Unknown codes
// map to 400 so domain validation errors surface as client errors.
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
