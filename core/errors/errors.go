package errors

import "fmt"

type ErrorCode string

const (
	ErrInvalidInput               ErrorCode = "invalid_input"
	ErrInvalidRequestData         ErrorCode = "invalid_request_data"
	ErrUnauthorized               ErrorCode = "unauthorized"
	ErrMissingAuthorizationHeader ErrorCode = "missing_authorization_header"
	ErrInvalidTokenFormat         ErrorCode = "invalid_token_format"
	ErrTokenExpired               ErrorCode = "token_expired"
	ErrForbidden                  ErrorCode = "forbidden"
	ErrNotFound                   ErrorCode = "not_found"
	ErrAlreadyExists              ErrorCode = "already_exists"
	ErrTooManyRequests            ErrorCode = "too_many_requests"
	ErrInternalServer             ErrorCode = "internal_server"

	// Submission link + event lifecycle codes
	ErrInvalidToken       ErrorCode = "invalid_token"
	ErrInvalidTransition  ErrorCode = "invalid_transition"
	ErrPreconditionFailed ErrorCode = "precondition_failed"
)

// AppError is the error type services return. Code drives the HTTP mapping
// in the base controller, Message is caller-facing, Err is the wrapped cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
