package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyOwner             = "github.owner"
	KeyRepo              = "github.repo"
	KeyPerPage           = "github.per_page"
	KeyDirection         = "github.direction"
	KeyMaxPages          = "github.max_pages"
	KeyTokenEnv          = "github.token_env"
	KeyAPIURL            = "github.api_url"
	KeyRequestsPerSecond = "github.requests_per_second"
	KeyOutputDir         = "output.dir"
	KeyStorageDir        = "storage.dir"
	KeyLogDir            = "log.dir"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
)

// knownKeys lists every key in display order.
var knownKeys = []struct {
	key  string
	kind valueKind
}{
	{KeyOwner, kindString},
	{KeyRepo, kindString},
	{KeyPerPage, kindInt},
	{KeyDirection, kindString},
	{KeyMaxPages, kindInt},
	{KeyTokenEnv, kindString},
	{KeyAPIURL, kindString},
	{KeyRequestsPerSecond, kindFloat},
	{KeyOutputDir, kindString},
	{KeyStorageDir, kindString},
	{KeyLogDir, kindString},
}

func keyKind(key string) (valueKind, bool) {
	for _, k := range knownKeys {
		if k.key == key {
			return k.kind, true
		}
	}
	return 0, false
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns validated settings with defaults applied.
func (s *SettingsService) Get() (domain.Settings, error) {
	return LoadSettings(s.configStore)
}

// LoadSettings builds typed settings from store, falling back to defaults
// for unset keys. Values of the wrong type or out of range yield a
// *domain.ConfigurationError.
func LoadSettings(store driven.ConfigStore) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	for _, k := range knownKeys {
		raw, ok := store.Get(k.key)
		if !ok {
			continue
		}
		if err := apply(&settings, k.key, k.kind, raw); err != nil {
			return domain.Settings{}, err
		}
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func apply(s *domain.Settings, key string, kind valueKind, raw any) error {
	var (
		str string
		num int
		flt float64
	)
	switch kind {
	case kindString:
		v, ok := raw.(string)
		if !ok {
			return domain.NewConfigurationError(key, fmt.Sprintf("expected a string, got %v", raw))
		}
		str = v
	case kindInt:
		v, ok := toInt(raw)
		if !ok {
			return domain.NewConfigurationError(key, fmt.Sprintf("expected an integer, got %v", raw))
		}
		num = v
	case kindFloat:
		v, ok := toFloat(raw)
		if !ok {
			return domain.NewConfigurationError(key, fmt.Sprintf("expected a number, got %v", raw))
		}
		flt = v
	}

	switch key {
	case KeyOwner:
		s.Target.Owner = str
	case KeyRepo:
		s.Target.Repo = str
	case KeyPerPage:
		s.PerPage = num
	case KeyDirection:
		s.Direction = domain.Direction(strings.ToLower(str))
	case KeyMaxPages:
		s.MaxPages = num
	case KeyTokenEnv:
		s.TokenEnv = str
	case KeyAPIURL:
		s.APIURL = str
	case KeyRequestsPerSecond:
		s.RequestsPerSecond = flt
	case KeyOutputDir:
		s.OutputDir = str
	case KeyStorageDir:
		s.StorageDir = str
	case KeyLogDir:
		s.LogDir = str
	}
	return nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Value returns the effective value of key.
func (s *SettingsService) Value(key string) (string, error) {
	if _, ok := keyKind(key); !ok {
		return "", domain.NewConfigurationError(key, "unknown setting")
	}
	for _, v := range s.List() {
		if v.Key == key {
			return v.Value, nil
		}
	}
	return "", domain.NewConfigurationError(key, "unknown setting")
}

// Set parses value according to the key's type and persists it.
// The resulting settings must still validate.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := keyKind(key)
	if !ok {
		return domain.NewConfigurationError(key, "unknown setting")
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return domain.NewConfigurationError(key, fmt.Sprintf("expected an integer, got %q", value))
		}
		parsed = int64(n)
	case kindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return domain.NewConfigurationError(key, fmt.Sprintf("expected a number, got %q", value))
		}
		parsed = f
	default:
		parsed = value
	}

	candidate, err := LoadSettings(s.configStore)
	if err != nil {
		candidate = domain.DefaultSettings()
	}
	if err := apply(&candidate, key, kind, parsed); err != nil {
		return err
	}
	if err := candidate.Validate(); err != nil {
		return err
	}

	return s.configStore.Set(key, parsed)
}

// List returns every known key with its effective value.
func (s *SettingsService) List() []driving.SettingValue {
	defaults := domain.DefaultSettings()
	values := make([]driving.SettingValue, 0, len(knownKeys))
	for _, k := range knownKeys {
		raw, ok := s.configStore.Get(k.key)
		v := driving.SettingValue{Key: k.key, IsDefault: !ok}
		if ok {
			v.Value = fmt.Sprint(raw)
		} else {
			v.Value = defaultValue(defaults, k.key)
		}
		values = append(values, v)
	}
	return values
}

func defaultValue(d domain.Settings, key string) string {
	switch key {
	case KeyOwner:
		return d.Target.Owner
	case KeyRepo:
		return d.Target.Repo
	case KeyPerPage:
		return strconv.Itoa(d.PerPage)
	case KeyDirection:
		return d.Direction.String()
	case KeyMaxPages:
		return strconv.Itoa(d.MaxPages)
	case KeyTokenEnv:
		return d.TokenEnv
	case KeyAPIURL:
		return d.APIURL
	case KeyRequestsPerSecond:
		return strconv.FormatFloat(d.RequestsPerSecond, 'g', -1, 64)
	case KeyOutputDir:
		return d.OutputDir
	case KeyStorageDir:
		return d.StorageDir
	case KeyLogDir:
		return d.LogDir
	default:
		return ""
	}
}
