package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable, machine-readable error code
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"

	// Database errors
	ErrCodeDBError    ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound ErrorCode = "DB_NOT_FOUND"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidID     ErrorCode = "INVALID_ID"

	// Notification errors
	ErrCodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"

	// Deadline pipeline and scheduler errors
	ErrCodeScanFailed      ErrorCode = "SCAN_FAILED"
	ErrCodeInvalidSchedule ErrorCode = "INVALID_SCHEDULE"
	ErrCodeSchedulerFailed ErrorCode = "SCHEDULER_FAILED"
)

// AppError is an error carrying a code and a user-facing message
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError reports whether err is, or wraps, an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError returns the first AppError in err's chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrOwnerNotFound        = errors.New("owner not found")
	ErrInvalidSchedule      = errors.New("invalid schedule expression")
	ErrScanFailed           = errors.New("deadline scan failed")
	ErrInvalidInput         = errors.New("invalid input")
)
