// Package config holds the dailydose configuration: the Gemini credential and
// model, the storage path, dashboard limits, and the admin passphrase.
// Configuration loads from a YAML file with environment overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all dailydose configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Gemini configuration
	LLM LLMConfig `yaml:"llm"`

	// Local slot store
	Storage StorageConfig `yaml:"storage"`

	// Dashboard policy knobs
	Limits LimitsConfig `yaml:"limits"`

	// Admin feed access
	Feed FeedConfig `yaml:"feed"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the nutrition planner's Gemini calls.
type LLMConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
	// Timeout bounds a single plan computation. Empty means no timeout.
	Timeout string `yaml:"timeout"`
}

// StorageConfig configures the slot store.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// LimitsConfig holds dashboard policy values: the pet-slot capacity and the
// delay before the signup nudge fires after a plan completes.
type LimitsConfig struct {
	MaxPets          int    `yaml:"max_pets"`
	SignupNudgeDelay string `yaml:"signup_nudge_delay"`
}

// FeedConfig configures admin access to the feed column.
type FeedConfig struct {
	Passphrase string `yaml:"passphrase"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "The Daily Dose",
		Version: "1.0.0",

		LLM: LLMConfig{
			Model: "gemini-2.5-flash",
		},

		Storage: StorageConfig{
			DatabasePath: "data/dailydose.db",
		},

		Limits: LimitsConfig{
			MaxPets:          4,
			SignupNudgeDelay: "2s",
		},

		Feed: FeedConfig{
			Passphrase: "Mia",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file is not an error;
// defaults plus environment overrides apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides. GEMINI_API_KEY
// takes precedence over the generic API_KEY.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if path := os.Getenv("DAILYDOSE_DB"); path != "" {
		c.Storage.DatabasePath = path
	}
	if pass := os.Getenv("DAILYDOSE_ADMIN_PASSPHRASE"); pass != "" {
		c.Feed.Passphrase = pass
	}
}

// GetLLMTimeout returns the plan-computation timeout, or zero when none is
// configured.
func (c *Config) GetLLMTimeout() time.Duration {
	if c.LLM.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// GetSignupNudgeDelay returns the delay before the signup nudge fires.
func (c *Config) GetSignupNudgeDelay() time.Duration {
	d, err := time.ParseDuration(c.Limits.SignupNudgeDelay)
	if err != nil || d < 0 {
		return 2 * time.Second
	}
	return d
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Limits.MaxPets <= 0 {
		return fmt.Errorf("limits.max_pets must be positive, got %d", c.Limits.MaxPets)
	}
	if c.Storage.DatabasePath == "" {
		return fmt.Errorf("storage.database_path is required")
	}
	return nil
}
