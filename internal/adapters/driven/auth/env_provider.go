package auth

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
)

// Ensure EnvTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*EnvTokenProvider)(nil)

// EnvTokenProvider reads a static Personal Access Token from an environment variable.
// PATs don't expire and don't require refresh.
type EnvTokenProvider struct {
	envVar string
	lookup func(string) (string, bool)
}

// NewEnvTokenProvider creates a token provider for the named variable.
func NewEnvTokenProvider(envVar string) *EnvTokenProvider {
	return &EnvTokenProvider{
		envVar: envVar,
		lookup: os.LookupEnv,
	}
}

// NewEnvTokenProviderWithLookup creates a provider with a custom lookup (for tests).
func NewEnvTokenProviderWithLookup(envVar string, lookup func(string) (string, bool)) *EnvTokenProvider {
	return &EnvTokenProvider{
		envVar: envVar,
		lookup: lookup,
	}
}

// GetToken returns the trimmed token, or a ConfigurationError if it is unset or blank.
func (p *EnvTokenProvider) GetToken(_ context.Context) (string, error) {
	token, ok := p.lookup(p.envVar)
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", &domain.ConfigurationError{
			Setting: p.envVar,
			Reason: fmt.Sprintf("missing %s environment variable; set it before running, e.g.\n"+
				"  export %s='ghp_...'", p.envVar, p.envVar),
			Err: domain.ErrMissingCredential,
		}
	}
	return token, nil
}

// AuthorizationID returns the environment variable name.
func (p *EnvTokenProvider) AuthorizationID() string {
	return p.envVar
}

// IsAuthenticated returns true if the variable holds a non-blank value.
func (p *EnvTokenProvider) IsAuthenticated() bool {
	token, ok := p.lookup(p.envVar)
	return ok && strings.TrimSpace(token) != ""
}
