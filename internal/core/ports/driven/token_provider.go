package driven

import (
	"context"
)

// TokenProvider provides the bearer credential for authenticated API calls.
type TokenProvider interface {
	// GetToken returns the access token, or a *domain.ConfigurationError
	// when no credential is available.
	GetToken(ctx context.Context) (string, error)

	// AuthorizationID names where the credential comes from,
	// e.g. the environment variable.
	AuthorizationID() string

	// IsAuthenticated returns true if a credential is available.
	IsAuthenticated() bool
}
