package errors

import "fmt"

// ErrorType categorizes engine errors.
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeComputation ErrorType = "computation"
	ErrorTypeConfig      ErrorType = "configuration"
	ErrorTypeIO          ErrorType = "io"
)

// Error codes the engine can attach to an AppError.
const (
	CodeLengthMismatch   = "LENGTH_MISMATCH"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeReadFailed       = "READ_FAILED"
)

// AppError is an application error with a stable type and code. Callers
// branch on Type/Code rather than message text.
type AppError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on type and code so sentinel comparisons survive wrapping.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// WithDetails attaches free-form detail text.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates an error with the given type and code.
func NewAppError(errType ErrorType, code, message string) *AppError {
	return &AppError{Type: errType, Code: code, Message: message}
}

// NewValidationError creates a caller-contract violation error.
func NewValidationError(code, message string) *AppError {
	return NewAppError(ErrorTypeValidation, code, message)
}

// NewComputationError creates an error for a computation that cannot proceed.
func NewComputationError(code, message string) *AppError {
	return NewAppError(ErrorTypeComputation, code, message)
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *AppError {
	return NewAppError(ErrorTypeConfig, code, message)
}

// WrapError wraps an underlying error with engine context.
func WrapError(err error, errType ErrorType, code, message string) *AppError {
	return &AppError{Type: errType, Code: code, Message: message, Cause: err}
}
