package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Credential errors
	CodeValidation     Code = "VALIDATION_FAILED"
	CodeDuplicateEmail Code = "DUPLICATE_EMAIL"
	CodeAuthFailed     Code = "AUTH_FAILED"

	// Token errors
	CodeTokenInvalid Code = "TOKEN_INVALID"
	CodeTokenExpired Code = "TOKEN_EXPIRED"

	// Request errors
	CodeUnauthenticated Code = "UNAUTHENTICATED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes. This is the single
// translation point between domain failures and transport status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation, CodeDuplicateEmail:
		return http.StatusBadRequest
	case CodeAuthFailed, CodeTokenInvalid, CodeTokenExpired, CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
