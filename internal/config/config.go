package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Environment variables overriding the config file
const (
	EnvAPIURL  = "COUNTRYPICK_API_URL"
	EnvLogFile = "COUNTRYPICK_LOG_FILE"
	EnvLang    = "COUNTRYPICK_LANG"
)

// Defaults
const (
	DefaultDebounce = 500 * time.Millisecond
	DefaultTimeout  = 10 * time.Second
	DefaultLogFile  = "countrypick.log"
	DefaultLanguage = "en"
)

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	API     APISettings    `toml:"api"`
	Search  SearchSettings `toml:"search"`
	UI      UISettings     `toml:"ui"`
	Log     LogSettings    `toml:"log"`
}

// APISettings describes the country endpoint
type APISettings struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
}

// SearchSettings tunes the search cards
type SearchSettings struct {
	Debounce    Duration `toml:"debounce"`
	VisibleRows int      `toml:"visible_rows"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Language string `toml:"language"`
	Mouse    bool   `toml:"mouse"`
}

// LogSettings controls the log file
type LogSettings struct {
	File string `toml:"file"`
}

// Duration is a time.Duration written as "500ms" in TOML
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText writes the duration in Go notation
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// ErrNotFound is returned by LoadFromPath for a missing file
var ErrNotFound = errors.New("config file not found")

// NewConfigService creates a config service for the user's config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "countrypick", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service bound to path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file. A missing file
// yields the default configuration.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			Timeout: Duration{DefaultTimeout},
		},
		Search: SearchSettings{
			Debounce:    Duration{DefaultDebounce},
			VisibleRows: 6,
		},
		UI: UISettings{
			Language: DefaultLanguage,
			Mouse:    true,
		},
		Log: LogSettings{
			File: DefaultLogFile,
		},
	}
}

// ApplyEnv overrides fields from the environment
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvAPIURL); v != "" {
		c.API.URL = v
	}
	if v := getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := getenv(EnvLang); v != "" {
		c.UI.Language = v
	}
}

// Validate checks the values a user can get wrong
func (c *Config) Validate() error {
	var errs []error

	if c.API.URL != "" {
		u, err := url.Parse(c.API.URL)
		if err != nil {
			errs = append(errs, fmt.Errorf("api.url: %w", err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Errorf("api.url: unsupported scheme %q", u.Scheme))
		}
	}
	if c.API.Timeout.Duration < 0 {
		errs = append(errs, fmt.Errorf("api.timeout: must not be negative"))
	}
	if c.Search.Debounce.Duration < 0 {
		errs = append(errs, fmt.Errorf("search.debounce: must not be negative"))
	}
	if c.Search.VisibleRows < 1 {
		errs = append(errs, fmt.Errorf("search.visible_rows: must be at least 1"))
	}
	if _, err := language.Parse(c.UI.Language); err != nil {
		errs = append(errs, fmt.Errorf("ui.language: %w", err))
	}

	return errors.Join(errs...)
}

// LanguageTag returns the configured UI language, English when unparsable
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.UI.Language)
	if err != nil {
		return language.English
	}
	return tag
}
