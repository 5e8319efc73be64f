package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned when a loaded configuration fails validation
var ErrInvalid = errors.New("invalid config")

// Frontends understood by the picker
const (
	FrontendRaw = "raw"
	FrontendTea = "tea"
)

// Config represents the application configuration
type Config struct {
	Version    int        `toml:"version"`
	Limits     Limits     `toml:"limits"`
	UISettings UISettings `toml:"ui"`
}

// Limits holds the hard bounds of a picker session. Exceeding any of them is fatal.
type Limits struct {
	MaxEntries       int `toml:"max_entries"`
	MaxEntryLength   int `toml:"max_entry_length"`
	MaxPatternLength int `toml:"max_pattern_length"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Frontend   string `toml:"frontend"`
	Prompt     string `toml:"prompt"`
	Marker     string `toml:"marker"`
	Color      bool   `toml:"color"`
	ShowStatus bool   `toml:"show_status"`
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

// NewConfigService creates a config service rooted at the user config directory
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
		filePath: filepath.Join(configDir, "cmenu", "config.toml"),
	}
}

// NewConfigServiceWithPath creates a config service reading a specific file
func NewConfigServiceWithPath(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the file the service loads from
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, returning defaults if the file is missing
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys absent from the
// file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
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

// Validate checks the limits and UI settings for values the picker cannot run with
func (c *Config) Validate() error {
	if c.Limits.MaxEntries <= 0 {
		return fmt.Errorf("%w: limits.max_entries must be positive, got %d", ErrInvalid, c.Limits.MaxEntries)
	}
	if c.Limits.MaxEntryLength <= 0 {
		return fmt.Errorf("%w: limits.max_entry_length must be positive, got %d", ErrInvalid, c.Limits.MaxEntryLength)
	}
	if c.Limits.MaxPatternLength <= 0 {
		return fmt.Errorf("%w: limits.max_pattern_length must be positive, got %d", ErrInvalid, c.Limits.MaxPatternLength)
	}

	switch c.UISettings.Frontend {
	case FrontendRaw, FrontendTea:
	default:
		return fmt.Errorf("%w: unknown ui.frontend %q", ErrInvalid, c.UISettings.Frontend)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Limits: Limits{
			MaxEntries:       512,
			MaxEntryLength:   511,
			MaxPatternLength: 511,
		},
		UISettings: UISettings{
			Frontend:   FrontendRaw,
			Prompt:     "> ",
			Marker:     " (*)",
			Color:      true,
			ShowStatus: true,
		},
	}
}
