// Package config loads impact's settings from YAML or TOML with
// environment variable expansion.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendJSON   = "jsonfile"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Themes understood by the ui package.
const (
	ThemeClassic = "classic"
	ThemeNeon    = "neon"
	ThemeMono    = "mono"
)

// Environment variables read by Load.
const (
	EnvConfigFile     = "IMPACT_CONFIG"
	EnvStorageBackend = "IMPACT_STORAGE_BACKEND"
	EnvStoragePath    = "IMPACT_STORAGE_PATH"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config represents the application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log" toml:"log"`
	Storage StorageConfig `yaml:"storage" toml:"storage"`
	UI      UIConfig      `yaml:"ui" toml:"ui"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("%w: log: %v", ErrInvalid, err)
	}
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("%w: storage: %v", ErrInvalid, err)
	}
	if err := c.UI.Validate(); err != nil {
		return fmt.Errorf("%w: ui: %v", ErrInvalid, err)
	}
	return nil
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	// File receives log lines; empty means stderr for commands and
	// nowhere while the full-screen list is open.
	File string `yaml:"file" toml:"file"`
}

func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
	)
}

// SlogLevel maps Level onto slog.
func (c *LogConfig) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// StorageConfig picks the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend" toml:"backend"`
	// Path is the data directory; sqlite keeps impact.db inside it.
	Path string `yaml:"path" toml:"path"`
}

func (c *StorageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendJSON, BackendSQLite, BackendMemory)),
		validation.Field(&c.Path, validation.When(c.Backend != BackendMemory, validation.Required)),
	)
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string `yaml:"theme" toml:"theme"`
	// ExclusiveEdit closes other inline editors when one opens.
	ExclusiveEdit bool `yaml:"exclusive_edit" toml:"exclusive_edit"`
}

func (c *UIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Theme, validation.Required, validation.In(ThemeClassic, ThemeNeon, ThemeMono)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Storage: StorageConfig{
			Backend: BackendJSON,
			Path:    filepath.Join("~", ".impact"),
		},
		UI: UIConfig{
			Theme:         ThemeClassic,
			ExclusiveEdit: true,
		},
	}
}

// Load reads filename over the defaults, applies environment overrides
// and validates the result. An empty filename falls back to
// $IMPACT_CONFIG; a file that does not exist leaves the defaults alone.
func Load(filename string) (*Config, error) {
	cfg := NewDefaultConfig()
	if filename == "" {
		filename = os.Getenv(EnvConfigFile)
	}
	if filename != "" {
		if err := decodeFile(filename, cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)

	path, err := ExpandHome(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	cfg.Storage.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}
	expanded := os.ExpandEnv(string(data))

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", filename, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", filename, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(filename))
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvStorageBackend)); v != "" {
		cfg.Storage.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStoragePath)); v != "" {
		cfg.Storage.Path = v
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
