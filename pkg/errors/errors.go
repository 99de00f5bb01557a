package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Declaration errors, raised while the section tree is built
	ErrEmptyPath             ErrorCode = "EMPTY_PATH"
	ErrMalformedGithubSpec   ErrorCode = "MALFORMED_GITHUB_SPEC"
	ErrUnsupportedSourceType ErrorCode = "UNSUPPORTED_SOURCE_TYPE"
	ErrResolverNotFound      ErrorCode = "RESOLVER_NOT_FOUND"
	ErrResolverFailed        ErrorCode = "RESOLVER_FAILED"

	// Acquisition errors
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"
	ErrFileAccess     ErrorCode = "FILE_ACCESS"
	ErrFileWrite      ErrorCode = "FILE_WRITE"
	ErrDirCreate      ErrorCode = "DIR_CREATE"
	ErrDownload       ErrorCode = "DOWNLOAD"
	ErrHTTPStatus     ErrorCode = "HTTP_STATUS"
	ErrCanceled       ErrorCode = "CANCELED"
)

// PluckError represents a structured error with code and details
type PluckError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PluckError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PluckError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PluckError) Is(target error) bool {
	var targetErr *PluckError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PluckError with the given code and message
func New(code ErrorCode, message string) *PluckError {
	return &PluckError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PluckError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PluckError {
	return &PluckError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PluckError
func Wrap(err error, code ErrorCode, message string) *PluckError {
	if err == nil {
		return nil
	}
	return &PluckError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PluckError {
	if err == nil {
		return nil
	}
	return &PluckError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PluckError) WithDetail(key string, value interface{}) *PluckError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PluckError) WithDetails(details map[string]interface{}) *PluckError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pluckErr *PluckError
	if errors.As(err, &pluckErr) {
		return pluckErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PluckError
func GetErrorCode(err error) ErrorCode {
	var pluckErr *PluckError
	if errors.As(err, &pluckErr) {
		return pluckErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PluckError
func GetErrorDetails(err error) map[string]interface{} {
	var pluckErr *PluckError
	if errors.As(err, &pluckErr) {
		return pluckErr.Details
	}
	return nil
}

// IsConfigurationError reports whether err belongs to the class of errors that
// abort building a section tree.
func IsConfigurationError(err error) bool {
	switch GetErrorCode(err) {
	case ErrEmptyPath, ErrMalformedGithubSpec, ErrUnsupportedSourceType,
		ErrResolverNotFound, ErrResolverFailed, ErrInvalidInput,
		ErrConfigLoad, ErrConfigParse, ErrConfigValid:
		return true
	}
	return false
}
