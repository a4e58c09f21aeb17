package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent pipeline failures.
// Per-record quality problems are never errors; they are counted in a Summary.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a malformed input artifact.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates a fatal configuration problem.
	// Reported before any network or file I/O is attempted.
	ErrConfiguration = errors.New("configuration error")

	// ErrMissingCredential indicates the API token environment variable is unset or blank.
	ErrMissingCredential = errors.New("missing credential")

	// ErrRemoteAPI indicates the issue tracker returned a non-success status
	// or an unexpected payload. It aborts the current collection run.
	ErrRemoteAPI = errors.New("remote API error")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// ConfigurationError describes an invalid or missing setting.
type ConfigurationError struct {
	// Setting is the configuration key or flag at fault.
	Setting string

	// Reason is a human-readable explanation.
	Reason string

	// Err is an optional underlying cause.
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Setting == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Reason)
}

// Is matches ErrConfiguration; the wrapped cause is reached through Unwrap.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a ConfigurationError for a setting.
func NewConfigurationError(setting, reason string) *ConfigurationError {
	return &ConfigurationError{Setting: setting, Reason: reason}
}

// IsConfigurationError reports whether err is a configuration failure.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
