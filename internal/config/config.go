// Package config handles the application configuration directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"
)

const fileMode = 0o600

// Sentinel errors.
var (
	// ErrNotFound means no config exists yet; the caller should run the
	// setup flow ('todo init') rather than treat this as a failure.
	ErrNotFound = errors.New("no configuration found (run 'todo init' to set up)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the application configuration.
type Config struct {
	Version int `yaml:"version"`

	// BaseDir is the user-chosen storage directory holding the JSON
	// snapshot and per-task attachment folders. Empty means the app has
	// not been pointed at a directory yet, which is a valid
	// pre-initialization state, not an error.
	BaseDir string `yaml:"base_dir,omitempty"`

	// WeekStart is the first day of the reporting week ("monday" or "sunday").
	WeekStart string `yaml:"week_start"`

	LLM LLMConfig `yaml:"llm"`

	// dir is the absolute path to the config directory (not serialized).
	dir string `yaml:"-"`
}

// LLMConfig holds the text-generation endpoint settings for reports.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	// APIKeyEnv names the environment variable carrying the API key.
	// The key itself is never written to the config file.
	APIKeyEnv string `yaml:"api_key_env"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:   CurrentVersion,
		WeekStart: DefaultWeekStart,
		LLM: LLMConfig{
			BaseURL:   DefaultLLMBaseURL,
			Model:     DefaultLLMModel,
			APIKeyEnv: DefaultAPIKeyEnv,
		},
	}
}

// Dir returns the absolute path to the config directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the config directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// DBPath returns the absolute path to the primary task database.
func (c *Config) DBPath() string {
	return filepath.Join(c.dir, DBFileName)
}

// WeekStartDay returns the configured first day of the reporting week.
func (c *Config) WeekStartDay() time.Weekday {
	if c.WeekStart == WeekStartSunday {
		return time.Sunday
	}
	return time.Monday
}

// HasBaseDir reports whether a storage directory has been configured.
func (c *Config) HasBaseDir() bool {
	return c.BaseDir != ""
}

// APIKey resolves the report API key from the environment, loading a .env
// file from the config directory first if one exists (best-effort).
func (c *Config) APIKey() string {
	_ = godotenv.Load(filepath.Join(c.dir, ".env"))
	env := c.LLM.APIKeyEnv
	if env == "" {
		env = DefaultAPIKeyEnv
	}
	return os.Getenv(env)
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.WeekStart != WeekStartMonday && c.WeekStart != WeekStartSunday {
		return fmt.Errorf("%w: week_start must be %q or %q", ErrInvalid, WeekStartMonday, WeekStartSunday)
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("%w: llm.base_url is required", ErrInvalid)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("%w: llm.model is required", ErrInvalid)
	}
	return nil
}

// Init creates a new config directory with default settings.
func Init(dir string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if _, err := os.Stat(filepath.Join(absDir, ConfigFileName)); err == nil {
		return nil, fmt.Errorf("config already exists at %s", absDir)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultDir returns the path to ~/.config/todo.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config/todo"), nil
}
