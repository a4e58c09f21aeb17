package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrConfiguration", ErrConfiguration},
		{"ErrMissingCredential", ErrMissingCredential},
		{"ErrRemoteAPI", ErrRemoteAPI},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestConfigurationError(t *testing.T) {
	t.Run("message includes setting", func(t *testing.T) {
		err := NewConfigurationError("github.per_page", "must be between 1 and 100")
		assert.Equal(t, "configuration error: github.per_page: must be between 1 and 100", err.Error())
	})

	t.Run("message without setting", func(t *testing.T) {
		err := &ConfigurationError{Reason: "no config"}
		assert.Equal(t, "configuration error: no config", err.Error())
	})

	t.Run("matches sentinel through wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", NewConfigurationError("x", "y"))
		assert.True(t, errors.Is(err, ErrConfiguration))
		assert.True(t, IsConfigurationError(err))
		assert.False(t, errors.Is(err, ErrRemoteAPI))
	})

	t.Run("unwraps cause", func(t *testing.T) {
		err := &ConfigurationError{Setting: "GITHUB_TOKEN", Reason: "not set", Err: ErrMissingCredential}
		assert.True(t, errors.Is(err, ErrMissingCredential))
		assert.True(t, errors.Is(err, ErrConfiguration))

		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "GITHUB_TOKEN", cfgErr.Setting)
	})

	t.Run("plain errors are not configuration errors", func(t *testing.T) {
		assert.False(t, IsConfigurationError(errors.New("boom")))
		assert.False(t, IsConfigurationError(nil))
	})
}
