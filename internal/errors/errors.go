package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeParseFailure      = "PARSE_FAILURE"
	CodeColumnAnalysis    = "COLUMN_ANALYSIS_FAILURE"
	CodeAssessment        = "ASSESSMENT_FAILURE"
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Common error constructors
func UnsupportedFormat(extension string) *AppError {
	return New(CodeUnsupportedFormat, fmt.Sprintf("unsupported file format: %s", extension))
}

func ParseFailure(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeParseFailure,
		Message: message,
		Cause:   cause,
	}
}

func ColumnAnalysisFailure(column string, cause error) *AppError {
	return &AppError{
		Code:    CodeColumnAnalysis,
		Message: fmt.Sprintf("analysis of column %s failed", column),
		Cause:   cause,
	}
}

func AssessmentFailure(cause error) *AppError {
	return &AppError{
		Code:    CodeAssessment,
		Message: "diagnostic assessment failed",
		Cause:   cause,
	}
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
