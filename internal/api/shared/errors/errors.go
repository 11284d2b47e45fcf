package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/issuance-vault/ledger/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest            ErrorCode = "bad_request"
	ErrCodeNotFound              ErrorCode = "not_found"
	ErrCodeValidationFailed      ErrorCode = "validation_failed"
	ErrCodeUnauthorized          ErrorCode = "unauthorized"
	ErrCodeInvalidTransition     ErrorCode = "invalid_transition"
	ErrCodeAlreadySettled        ErrorCode = "already_settled"
	ErrCodeAlreadyFractionalized ErrorCode = "already_fractionalized"
	ErrCodeNotCleared            ErrorCode = "not_cleared"
	ErrCodeProvenanceBreak       ErrorCode = "provenance_break"
	ErrCodeInsufficientBalance   ErrorCode = "insufficient_balance"

	// Server errors (5xx)
	ErrCodeInvariantViolation ErrorCode = "invariant_violation"
	ErrCodeInternalError      ErrorCode = "internal_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// domainErrors maps every domain error kind to its code, status and public message.
// Order matters only for errors wrapping more than one kind.
var domainErrors = []struct {
	err     error
	status  int
	code    ErrorCode
	message string
}{
	{domain.ErrInvariantViolation, http.StatusInternalServerError, ErrCodeInvariantViolation, "Ledger invariant violated"},
	{domain.ErrProvenanceBreak, http.StatusConflict, ErrCodeProvenanceBreak, "Transfer does not continue the custody chain"},
	{domain.ErrValidation, http.StatusUnprocessableEntity, ErrCodeValidationFailed, "Validation failed"},
	{domain.ErrAssetNotFound, http.StatusNotFound, ErrCodeNotFound, "Asset not found"},
	{domain.ErrAlreadySettled, http.StatusConflict, ErrCodeAlreadySettled, "Asset already settled"},
	{domain.ErrAlreadyFractionalized, http.StatusConflict, ErrCodeAlreadyFractionalized, "Asset already fractionalized"},
	{domain.ErrNotCleared, http.StatusConflict, ErrCodeNotCleared, "Asset not cleared"},
	{domain.ErrInsufficientBalance, http.StatusConflict, ErrCodeInsufficientBalance, "Insufficient fraction balance"},
	{domain.ErrInvalidTransition, http.StatusConflict, ErrCodeInvalidTransition, "Invalid state transition"},
}

// FromError translates an error returned by the ledger into an HTTP status and an API error.
// Unknown errors become internal errors without details so infrastructure messages never leak.
func FromError(err error) (int, *APIError) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return statusForCode(apiErr.Code), apiErr
	}

	for _, de := range domainErrors {
		if errors.Is(err, de.err) {
			details := ""
			if de.status < http.StatusInternalServerError {
				details = err.Error()
			}
			return de.status, &APIError{Code: de.code, Message: de.message, Details: details}
		}
	}

	return http.StatusInternalServerError, NewInternalError("Internal server error")
}

func statusForCode(code ErrorCode) int {
	switch code {
	case ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeInvalidTransition, ErrCodeAlreadySettled, ErrCodeAlreadyFractionalized,
		ErrCodeNotCleared, ErrCodeProvenanceBreak, ErrCodeInsufficientBalance:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
