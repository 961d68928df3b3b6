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

	// Bootstrap errors
	ErrGitMissing  ErrorCode = "GIT_MISSING"
	ErrCloneFailed ErrorCode = "CLONE_FAILED"
	ErrCloneExists ErrorCode = "CLONE_TARGET_EXISTS"
	ErrLinkCreate  ErrorCode = "LINK_CREATE"
	ErrLinkExists  ErrorCode = "LINK_EXISTS"

	// Generation errors
	ErrProcessorUnknown ErrorCode = "PROCESSOR_UNKNOWN"
	ErrProcessorFailed  ErrorCode = "PROCESSOR_FAILED"
	ErrTemplateParse    ErrorCode = "TEMPLATE_PARSE"
	ErrTemplateRender   ErrorCode = "TEMPLATE_RENDER"
	ErrLayoutMissing    ErrorCode = "LAYOUT_MISSING"

	// Version errors
	ErrVersionNotFound ErrorCode = "VERSION_NOT_FOUND"
	ErrNoCurrent       ErrorCode = "NO_CURRENT_VERSION"

	// Deploy errors
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
	ErrDeployCopy    ErrorCode = "DEPLOY_COPY"

	// Site errors
	ErrSiteExists  ErrorCode = "SITE_EXISTS"
	ErrSiteInvalid ErrorCode = "SITE_INVALID"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"

	// CLI errors. Usage errors map to exit code 2.
	ErrUsage ErrorCode = "USAGE"
)

// WebgenError represents a structured error with code and details
type WebgenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *WebgenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *WebgenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *WebgenError) Is(target error) bool {
	var targetErr *WebgenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new WebgenError with the given code and message
func New(code ErrorCode, message string) *WebgenError {
	return &WebgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new WebgenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *WebgenError {
	return &WebgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a WebgenError
func Wrap(err error, code ErrorCode, message string) *WebgenError {
	if err == nil {
		return nil
	}
	return &WebgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *WebgenError {
	if err == nil {
		return nil
	}
	return &WebgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *WebgenError) WithDetail(key string, value interface{}) *WebgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var webgenErr *WebgenError
	if errors.As(err, &webgenErr) {
		return webgenErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a WebgenError
func GetErrorCode(err error) ErrorCode {
	var webgenErr *WebgenError
	if errors.As(err, &webgenErr) {
		return webgenErr.Code
	}
	return ErrUnknown
}
