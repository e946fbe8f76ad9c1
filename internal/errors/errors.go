package errors

import "fmt"

// ErrorCode represents a journal error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrConflict       ErrorCode = "CONFLICT"        // 409
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// JournalError represents a structured error with code, status, and details.
type JournalError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *JournalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *JournalError {
	return &JournalError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when an entry cannot be found.
func NewNotFound(namespace string, id int64) *JournalError {
	return &JournalError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("entry not found: %s/%d", namespace, id),
		Details: map[string]any{"namespace": namespace, "id": id},
	}
}

// NewConflict creates a 409 error for general conflicts.
func NewConflict(msg string) *JournalError {
	return &JournalError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *JournalError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &JournalError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a JournalError with the given code.
func Is(err error, code ErrorCode) bool {
	if jErr, ok := err.(*JournalError); ok {
		return jErr.Code == code
	}
	return false
}
