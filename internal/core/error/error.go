package errx

import (
	"errors"
	"fmt"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
)

// Menu taxonomy. Frame handlers recover these locally and turn them into
// reply sentences; they never reach the dialogue manager.
var (
	ErrEntryExists      = errors.New("entry already on the menu")
	ErrEntryNotFound    = errors.New("entry not on the menu")
	ErrEntryNotOnMenu   = errors.New("ordered entry not on the menu")
	ErrCourseNotValid   = errors.New("course not valid")
	ErrCourseAlreadySet = errors.New("course already set")
)

// ASR taxonomy. Unintelligible speech is re-listened, an unavailable
// service ends the session.
var (
	ErrUnintelligible     = errors.New("speech unintelligible")
	ErrServiceUnavailable = errors.New("speech service unavailable")
)

// AppError wraps an underlying error with a status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}
