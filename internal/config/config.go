// Package config handles configuration loading and management for archguide.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ProjectConfigName is the per-directory override file.
const ProjectConfigName = ".archguide.yaml"

// Provider names accepted by guide.provider.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Config holds all configuration for archguide.
type Config struct {
	Guide     GuideConfig     `mapstructure:"guide" yaml:"guide"`
	Gemini    GeminiConfig    `mapstructure:"gemini" yaml:"gemini"`
	Anthropic AnthropicConfig `mapstructure:"anthropic" yaml:"anthropic"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// GuideConfig holds lookup settings shared by all providers.
type GuideConfig struct {
	Provider string `mapstructure:"provider" yaml:"provider"`
	Language string `mapstructure:"language" yaml:"language"`
}

// GeminiConfig holds Gemini API settings.
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	Model   string `mapstructure:"model" yaml:"model"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	Model  string `mapstructure:"model" yaml:"model"`
}

// LogConfig holds log output settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (GEMINI_API_KEY, ANTHROPIC_API_KEY)
// 2. Project config (.archguide.yaml in current directory or parent)
// 3. User config (~/.config/archguide/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	bindEnv(v)

	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific path (for testing).
// Environment variables still override file values.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	bindEnv(v)

	return unmarshal(v)
}

// SetUserValue stores a single key in the user config file.
// Other keys in the file are kept as written; environment variables,
// project overrides and defaults are never copied in.
func SetUserValue(key, value string) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return SetValueInFile(filepath.Join(userConfigDir, "config.yaml"), key, value)
}

// SetValueInFile stores a single key in the YAML file at path, creating it
// if needed. Only the file's own contents are read: no env binding and no
// ${VAR} expansion.
func SetValueInFile(path, key, value string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}

	v.Set(key, value)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("guide.provider", ProviderGemini)
	v.SetDefault("guide.language", "Korean")

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.base_url", "")

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-20250514")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", DefaultLogPath())
}

// bindEnv maps the well-known credential variables onto config keys.
func bindEnv(v *viper.Viper) {
	v.AutomaticEnv()
	v.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Gemini.APIKey = expandEnv(cfg.Gemini.APIKey)
	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// getUserConfigDir returns the XDG config directory for archguide.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "archguide")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "archguide")
	}
	return filepath.Join(home, ".config", "archguide")
}

// DefaultLogPath returns the XDG state path for the log file.
func DefaultLogPath() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "archguide.log")
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "archguide", "archguide.log")
}

// findProjectConfig searches for .archguide.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ProjectConfigName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Guide: GuideConfig{
			Provider: ProviderGemini,
			Language: "Korean",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet-4-20250514",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			File:   DefaultLogPath(),
		},
	}
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	switch c.Guide.Provider {
	case ProviderGemini, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown provider %q (want %q or %q)", c.Guide.Provider, ProviderGemini, ProviderAnthropic)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
