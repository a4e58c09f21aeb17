package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// MaxErrorBody is the number of response body characters kept for diagnostics.
const MaxErrorBody = 500

// GitHub-specific errors.
var (
	// ErrUnexpectedPayload indicates a response body that is not the expected JSON shape.
	ErrUnexpectedPayload = errors.New("github: unexpected response payload")

	// ErrInvalidCursor indicates a page cursor outside the valid range.
	ErrInvalidCursor = errors.New("github: invalid page cursor")
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.UTC().Format(time.RFC3339))
}

// Is matches domain.ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited
}

// RemoteAPIError represents a failed call to the issue tracker: a non-success
// status after the rate-limit retry, a transport failure, or an unexpected payload.
type RemoteAPIError struct {
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	Method string
	URL    string

	// Body holds the first MaxErrorBody characters of the response body.
	Body string

	// Err is the underlying cause, if any.
	Err error
}

func (e *RemoteAPIError) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("github: %s %s: %v", e.Method, e.URL, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("github: API error %d for %s: %v", e.StatusCode, e.URL, e.Err)
	default:
		return fmt.Sprintf("github: API error %d for %s\nResponse (first %d chars): %s",
			e.StatusCode, e.URL, MaxErrorBody, e.Body)
	}
}

// Is matches domain.ErrRemoteAPI.
func (e *RemoteAPIError) Is(target error) bool {
	return target == domain.ErrRemoteAPI
}

// Unwrap returns the underlying cause.
func (e *RemoteAPIError) Unwrap() error {
	return e.Err
}

// newStatusError builds a RemoteAPIError from a non-success response.
func newStatusError(method string, resp *Response) *RemoteAPIError {
	return &RemoteAPIError{
		StatusCode: resp.StatusCode,
		Method:     method,
		URL:        resp.URL,
		Body:       truncate(string(resp.Body), MaxErrorBody),
	}
}

// truncate returns at most n characters of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return true
	}
	return statusIs(err, http.StatusTooManyRequests)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return statusIs(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	return statusIs(err, http.StatusForbidden)
}

func statusIs(err error, status int) bool {
	var apiErr *RemoteAPIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}
