package services

import (
	"fmt"
)

// Service error types and codes.
const (
	// Error types
	ErrTypeDatabase     = "database_error"
	ErrTypeValidation   = "validation_error"
	ErrTypeNotFound     = "not_found_error"
	ErrTypeExternal     = "external_service_error"
	ErrTypeUnauthorized = "unauthorized_error"

	// Error codes
	ErrCodeDBQuery          = "db_query_failed"
	ErrCodeInvalidInput     = "invalid_input"
	ErrCodeResourceNotFound = "resource_not_found"
	ErrCodeNothingToImport  = "nothing_to_import"
	ErrCodeUpstreamFailed   = "upstream_request_failed"
	ErrCodeUnauthorized     = "unauthorized_access"
)

// ServiceError is the typed failure every service operation raises. Handlers
// translate the Type into an HTTP status code.
type ServiceError struct {
	Type    string
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %s", e.Type, e.Code, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s - %s", e.Type, e.Code, e.Message)
}

// Unwrap returns the original error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is compares service errors by type and code.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}
