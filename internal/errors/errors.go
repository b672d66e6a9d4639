package errors

import (
	stderrors "errors"
	"net/http"

	"gorm.io/gorm"
)

// ErrorResponse represents a standardized error response for the failures
// that are not expressed as redirects (not-found lookups, storage errors).
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapStorageError maps repository errors to HTTP errors. Unknown ids
// become 404s, everything else is an internal error.
func MapStorageError(err error) *HTTPError {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return NewHTTPError(http.StatusNotFound, "record not found", "NOT_FOUND")
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
