package model

import "fmt"

// ErrorCode represents a structured error code.
type ErrorCode string

const (
	ErrValidation   ErrorCode = "VALIDATION_ERROR"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrForbidden    ErrorCode = "FORBIDDEN"
	ErrUpstream     ErrorCode = "UPSTREAM_ERROR"
	ErrUnavailable  ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured error. The API client produces it from remote
// failures and form validation produces it from bad input.
type APIError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"-"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any *APIError carrying the same code, so callers can write
// errors.Is(err, &model.APIError{Code: model.ErrUnauthorized}).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// FieldError describes a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewValidationError creates an APIError with validation details.
func NewValidationError(msg string, details ...FieldError) *APIError {
	return &APIError{Code: ErrValidation, Message: msg, Details: details}
}

// NewNotFoundError creates a NOT_FOUND APIError.
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
	}
}

// NewUnauthorizedError creates an UNAUTHORIZED APIError.
func NewUnauthorizedError(msg string) *APIError {
	return &APIError{Code: ErrUnauthorized, Message: msg}
}

// NewForbiddenError creates a FORBIDDEN APIError.
func NewForbiddenError(msg string) *APIError {
	return &APIError{Code: ErrForbidden, Message: msg}
}

// Sentinels for errors.Is comparisons.
var (
	ErrUnauthorizedSentinel = &APIError{Code: ErrUnauthorized}
	ErrForbiddenSentinel    = &APIError{Code: ErrForbidden}
	ErrNotFoundSentinel     = &APIError{Code: ErrNotFound}
	ErrUnavailableSentinel  = &APIError{Code: ErrUnavailable}
)

// ValidationMessage joins the field messages of a validation error into a
// single line suitable for a form flash. Returns err.Error() for other errors.
func ValidationMessage(err error) string {
	apiErr, ok := err.(*APIError)
	if !ok || len(apiErr.Details) == 0 {
		if ok {
			return apiErr.Message
		}
		return err.Error()
	}
	msg := apiErr.Message
	for _, d := range apiErr.Details {
		if d.Field != "" {
			msg += "; " + d.Field + ": " + d.Message
		} else {
			msg += "; " + d.Message
		}
	}
	return msg
}
