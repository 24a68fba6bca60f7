package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Store errors
	ErrConstraintViolation = errors.New("constraint violation")
	ErrTransport           = errors.New("backend unavailable")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)

// Student Errors
var (
	ErrStudentNotFound   = fmt.Errorf("student %w", ErrResourceNotFound)
	ErrNoPendingDelete   = errors.New("no delete is awaiting confirmation")
	ErrDirectoryNotReady = errors.New("student directory has not been loaded")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}

// ValidationError carries field-level reasons keyed by json field name
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a ValidationError for the given field reasons
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Error implements error interface
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap implements errors.Unwrap interface
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ConstraintError is a store-level rejection caused by a uniqueness rule
type ConstraintError struct {
	// Field is the json name of the protected field, empty when unknown
	Field string
	// Constraint is the name reported by the store
	Constraint string
}

// Error implements error interface
func (e *ConstraintError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("unique constraint %q violated", e.Constraint)
	}
	return fmt.Sprintf("unique constraint on %s violated", e.Field)
}

// Unwrap implements errors.Unwrap interface
func (e *ConstraintError) Unwrap() error {
	return ErrConstraintViolation
}

// UserMessage returns the message shown next to the offending field
func (e *ConstraintError) UserMessage() string {
	switch e.Field {
	case "enrollmentCode":
		return "Enrollment code already registered"
	case "email":
		return "Email already registered"
	case "ownerUserId":
		return "This account is already linked to another student"
	default:
		return "Duplicate data"
	}
}

// TransportError wraps a network or backend failure
type TransportError struct {
	Op  string
	Err error
}

// NewTransportError wraps err as a transport failure of op
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// Error implements error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap implements errors.Unwrap interface
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes every TransportError match ErrTransport
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
