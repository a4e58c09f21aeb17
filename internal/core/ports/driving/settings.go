package driving

import "github.com/NicholasSynovic/joss-dataset/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the typed settings with defaults applied and validated.
	Get() (domain.Settings, error)

	// Value returns the effective value of a known key as a string.
	Value(key string) (string, error)

	// Set parses value for a known key and persists it.
	Set(key, value string) error

	// List returns every known key with its effective value.
	List() []SettingValue
}

// SettingValue is one configuration key and its effective value.
type SettingValue struct {
	Key   string
	Value string

	// IsDefault is true when the key is not set in the config file.
	IsDefault bool
}
