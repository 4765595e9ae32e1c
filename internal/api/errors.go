package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("backend unreachable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrUnauthorized indicates the backend rejected the bearer token.
	// Expired tokens are only discovered this way; no local expiry check
	// is performed.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials indicates a rejected login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// APIError carries the backend's human-readable failure message for a
// non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// UserMessage returns the text to surface in a notification for any error
// coming out of the client.
func UserMessage(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return "Login failed. Please check your credentials."
	case errors.Is(err, ErrUnauthorized):
		return "Session expired. Please log in again."
	case errors.Is(err, ErrTimeout):
		return "The server took too long to respond."
	case errors.Is(err, ErrUnavailable):
		return "Could not reach the server."
	case errors.As(err, &apiErr):
		return apiErr.Error()
	default:
		return err.Error()
	}
}

func errorCode(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return "UNAUTHORIZED"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("HTTP_%d", apiErr.Status)
	default:
		return "UNKNOWN"
	}
}
