package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeSchema     ErrorType = "SCHEMA"
	ErrTypeIO         ErrorType = "IO"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewSchemaError reports a column that a step requires but the table lacks.
func NewSchemaError(step, column string) *AppError {
	return NewAppError(ErrTypeSchema, fmt.Sprintf("%s: column %q not found", step, column), nil).
		WithContext("step", step).
		WithContext("column", column)
}

// NewIOError reports a failed read or write of path. A *fs.PathError cause
// for the same path is reduced to its underlying error so the path is not
// repeated.
func NewIOError(op, path string, cause error) *AppError {
	var pathErr *fs.PathError
	if stderrors.As(cause, &pathErr) && pathErr.Path == path {
		cause = pathErr.Err
	}
	return NewAppError(ErrTypeIO, fmt.Sprintf("%s %s", op, path), cause).
		WithContext("op", op).
		WithContext("path", path)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether any error in err's chain is an AppError of errType.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsSchemaError reports whether err is (or wraps) a SCHEMA AppError.
func IsSchemaError(err error) bool {
	return IsType(err, ErrTypeSchema)
}

// IsIOError reports whether err is (or wraps) an IO AppError.
func IsIOError(err error) bool {
	return IsType(err, ErrTypeIO)
}

// Column returns the offending column recorded on a schema error, if any.
func Column(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		if col, ok := appErr.Context["column"].(string); ok {
			return col
		}
	}
	return ""
}
