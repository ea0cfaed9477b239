package auth

import "net/http"

// Code is a stable, machine-readable error code. HTTP-layer collaborators
// choose status codes from it without re-deriving meaning from free-text
// messages.
type Code string

const (
	// CodeValidation marks malformed input; the caller can correct and retry.
	CodeValidation Code = "VALIDATION_ERROR"

	// Authentication-domain codes, surfaced verbatim to the end user.
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeAccountLocked      Code = "ACCOUNT_LOCKED"
	CodeAccountSuspended   Code = "ACCOUNT_SUSPENDED"
	CodeEmailNotVerified   Code = "EMAIL_NOT_VERIFIED"
	CodeEmailAlreadyExists Code = "EMAIL_ALREADY_EXISTS"

	// Token-domain codes. Reuse detection is fatal to the session: it is
	// destroyed rather than retried.
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
	CodeTokenInvalid       Code = "TOKEN_INVALID"
	CodeTokenReuseDetected Code = "TOKEN_REUSE_DETECTED"

	// Authorization-domain codes with distinct status codes.
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"

	// CodeRateLimited is transient; the caller should back off and retry.
	CodeRateLimited Code = "RATE_LIMITED"

	// CodeInternal is unexpected; logged with full context, generic to clients.
	CodeInternal Code = "INTERNAL_SERVER_ERROR"
)

// HTTPStatus maps the code to an HTTP status for thin route handlers.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeInvalidCredentials, CodeTokenExpired, CodeTokenInvalid,
		CodeTokenReuseDetected, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeAccountLocked, CodeAccountSuspended, CodeEmailNotVerified, CodeForbidden:
		return http.StatusForbidden
	case CodeEmailAlreadyExists:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is the service-level error envelope carried across the HTTP boundary.
type Error struct {
	Code    Code     `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewError creates a service error with a stable code and client-safe
// message. Details carry field-level specifics such as policy violations.
func NewError(code Code, message string, details ...string) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

// AsError extracts a service Error when err carries one.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	e, ok := err.(*Error)
	return e, ok
}
