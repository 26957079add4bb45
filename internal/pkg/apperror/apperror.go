package apperror

import "net/http"

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound marks a referenced entity as absent.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Conflict marks a request that would violate a state invariant
// (slot taken or blocked, booking already terminal, duplicate rows).
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}

// PreconditionFailed marks a time-window or profile-completeness
// violation. The request may become valid later.
func PreconditionFailed(message string) *AppError {
	return New(http.StatusPreconditionFailed, message)
}

// BadRequest marks malformed or invalid input.
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}
