// Package apperrors defines the recoverable, user-actionable error kinds the
// stores report, and their mapping onto HTTP responses.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrDuplicateEmail is returned when signing up with an email that is already registered.
	ErrDuplicateEmail = errors.New("email already used")
	// ErrInvalidCredentials is returned when no user matches the given email and password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated is returned when an operation requires a logged-in session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotAuthorized is returned when the session is not allowed to perform the operation.
	ErrNotAuthorized = errors.New("only the post author can do that")
	// ErrNotFound is returned when the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmptyPost is returned when a post has neither text nor an image.
	ErrEmptyPost = errors.New("post is empty")
	// ErrEmptyComment is returned when a comment text trims to nothing.
	ErrEmptyComment = errors.New("comment is empty")
	// ErrMissingFields is returned when signup input is incomplete.
	ErrMissingFields = errors.New("name, email and password are required")
)

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with its status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ToErrorResponse converts an HTTPError to an ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Code: e.Code}
}

// MapToHTTP maps store errors to HTTP errors. Unknown errors become a 500
// without leaking their message.
func MapToHTTP(err error) *HTTPError {
	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		status, code = http.StatusConflict, "DUPLICATE_EMAIL"
	case errors.Is(err, ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, ErrNotAuthenticated):
		status, code = http.StatusUnauthorized, "NOT_AUTHENTICATED"
	case errors.Is(err, ErrNotAuthorized):
		status, code = http.StatusForbidden, "NOT_AUTHORIZED"
	case errors.Is(err, ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ErrEmptyPost):
		status, code = http.StatusBadRequest, "EMPTY_POST"
	case errors.Is(err, ErrEmptyComment):
		status, code = http.StatusBadRequest, "EMPTY_COMMENT"
	case errors.Is(err, ErrMissingFields):
		status, code = http.StatusBadRequest, "MISSING_FIELDS"
	default:
		return &HTTPError{StatusCode: status, Message: "internal server error", Code: code}
	}
	return &HTTPError{StatusCode: status, Message: err.Error(), Code: code}
}
