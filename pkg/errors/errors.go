package errors

import (
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeValidation indicates invalid or missing request input,
	// rejected before any provider call
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeProvider indicates an external provider call failed or
	// timed out; callers degrade instead of aborting
	ErrorTypeProvider ErrorType = "PROVIDER_UNAVAILABLE"

	// ErrorTypeEnrichment indicates the generative analysis failed or
	// returned malformed output; callers fall back to rule-based insight
	ErrorTypeEnrichment ErrorType = "ENRICHMENT_UNAVAILABLE"

	// ErrorTypeInternal indicates an unexpected failure anywhere in the
	// pipeline
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewProviderError creates a new provider-unavailable error
func NewProviderError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeProvider,
		Message: message,
		Err:     err,
	}
}

// NewEnrichmentError creates a new enrichment-unavailable error
func NewEnrichmentError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeEnrichment,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}
