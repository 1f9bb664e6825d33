package faults

import (
	"errors"
	"strings"
)

type ErrorCategory string

const (
	ActionNotPermittedError ErrorCategory = "ActionNotPermittedError"
	MissingIdentityError    ErrorCategory = "MissingIdentityError"
	ValidationError         ErrorCategory = "ValidationError"
	TransportError          ErrorCategory = "TransportError"
	ConfigError             ErrorCategory = "ConfigError"
	NotFoundError           ErrorCategory = "NotFoundError"
	ConflictError           ErrorCategory = "ConflictError"
	AuthError               ErrorCategory = "AuthError"
	InternalError           ErrorCategory = "InternalError"
)

// FieldError describes a single attribute-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

type TypedError struct {
	Category ErrorCategory
	Message  string
	Fields   []FieldError
	Cause    error
}

func (e *TypedError) Error() string {
	if e == nil {
		return "<nil>"
	}
	message := e.Message
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, field := range e.Fields {
			parts = append(parts, field.Field+": "+field.Message)
		}
		if message != "" {
			message += " [" + strings.Join(parts, "; ") + "]"
		} else {
			message = strings.Join(parts, "; ")
		}
	}
	if message != "" && e.Cause != nil {
		return message + ": " + e.Cause.Error()
	}
	if message != "" {
		return message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return string(e.Category)
}

func (e *TypedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewTypedError(category ErrorCategory, message string, cause error) *TypedError {
	return &TypedError{
		Category: category,
		Message:  message,
		Cause:    cause,
	}
}

// NewValidationError builds a ValidationError carrying per-field detail.
func NewValidationError(message string, fields []FieldError) *TypedError {
	return &TypedError{
		Category: ValidationError,
		Message:  message,
		Fields:   fields,
	}
}

func IsCategory(err error, category ErrorCategory) bool {
	if err == nil {
		return false
	}

	var typedErr *TypedError
	if !errors.As(err, &typedErr) {
		return false
	}
	return typedErr.Category == category
}

// FieldErrors returns the structured field failures attached to err, if any.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	var typedErr *TypedError
	if !errors.As(err, &typedErr) {
		return nil
	}
	return typedErr.Fields
}
