package config

import (
	"errors"
	"os"
	"strings"
)

// ErrNoAPIKey is returned when no API key is configured.
var ErrNoAPIKey = errors.New("no API key configured")

// Environment variables holding provider credentials.
const (
	GeminiKeyEnv    = "GEMINI_API_KEY"
	AnthropicKeyEnv = "ANTHROPIC_API_KEY"
)

// KeyEnvVar returns the environment variable that holds the key for provider.
func KeyEnvVar(provider string) string {
	if provider == ProviderAnthropic {
		return AnthropicKeyEnv
	}
	return GeminiKeyEnv
}

// GetAPIKey returns the API key for the configured provider.
// It checks in order: environment variable, config file.
func GetAPIKey(cfg *Config) (string, error) {
	provider := ProviderGemini
	if cfg != nil && cfg.Guide.Provider != "" {
		provider = cfg.Guide.Provider
	}

	if key := strings.TrimSpace(os.Getenv(KeyEnvVar(provider))); key != "" {
		return key, nil
	}

	if key := configKey(cfg, provider); key != "" {
		return key, nil
	}

	return "", ErrNoAPIKey
}

// configKey returns the expanded config-file key, or "" if it is unset or
// references an undefined variable.
func configKey(cfg *Config, provider string) string {
	if cfg == nil {
		return ""
	}
	raw := cfg.Gemini.APIKey
	if provider == ProviderAnthropic {
		raw = cfg.Anthropic.APIKey
	}
	key := strings.TrimSpace(os.ExpandEnv(raw))
	if key == "" || strings.HasPrefix(key, "${") {
		return ""
	}
	return key
}

// ValidateAPIKey performs basic format validation on an API key.
// It does not verify the key with the provider.
func ValidateAPIKey(provider, key string) error {
	if key == "" {
		return ErrNoAPIKey
	}

	switch provider {
	case ProviderAnthropic:
		if !strings.HasPrefix(key, "sk-ant-") {
			return errors.New("invalid API key format: expected 'sk-ant-' prefix")
		}
	default:
		// Google API keys start with "AIza"
		if !strings.HasPrefix(key, "AIza") {
			return errors.New("invalid API key format: expected 'AIza' prefix")
		}
	}

	if len(key) < 20 {
		return errors.New("invalid API key format: key too short")
	}

	return nil
}

// MaskAPIKey returns a masked version of the API key for display.
// Shows the first 4 and last 4 characters.
func MaskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}

	if len(key) <= 12 {
		return "***"
	}

	return key[:4] + "..." + key[len(key)-4:]
}

// KeySource represents where an API key was loaded from.
type KeySource string

const (
	KeySourceEnv    KeySource = "environment"
	KeySourceConfig KeySource = "config_file"
	KeySourceNone   KeySource = "none"
)

// GetAPIKeySource returns where the API key for the configured provider was sourced from.
func GetAPIKeySource(cfg *Config) KeySource {
	provider := ProviderGemini
	if cfg != nil && cfg.Guide.Provider != "" {
		provider = cfg.Guide.Provider
	}

	if strings.TrimSpace(os.Getenv(KeyEnvVar(provider))) != "" {
		return KeySourceEnv
	}

	if configKey(cfg, provider) != "" {
		return KeySourceConfig
	}

	return KeySourceNone
}
