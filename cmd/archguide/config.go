package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/archguide/internal/config"
)

var configYAML bool

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify archguide configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/archguide/config.yaml
Project-specific overrides can be placed in .archguide.yaml`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			if configYAML {
				displayConfigYAML(cfg)
				return
			}
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

func init() {
	configCmd.Flags().BoolVar(&configYAML, "yaml", false, "Print the effective configuration as YAML")
}

// configKeys lists the keys accepted by get and set, in display order.
var configKeys = []string{
	"guide.provider",
	"guide.language",
	"gemini.api_key",
	"gemini.model",
	"gemini.base_url",
	"anthropic.api_key",
	"anthropic.model",
	"log.level",
	"log.format",
	"log.file",
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	for _, key := range configKeys {
		value, _ := getConfigValue(cfg, key)
		fmt.Printf("%s: %s\n", key, value)
	}
	fmt.Printf("\napi key source: %s\n", config.GetAPIKeySource(cfg))
}

// displayConfigYAML prints the configuration as YAML with keys masked.
func displayConfigYAML(cfg *config.Config) {
	out, err := maskedYAML(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}

func maskedYAML(cfg *config.Config) (string, error) {
	masked := *cfg
	masked.Gemini.APIKey = config.MaskAPIKey(cfg.Gemini.APIKey)
	masked.Anthropic.APIKey = config.MaskAPIKey(cfg.Anthropic.APIKey)

	data, err := yaml.Marshal(&masked)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(data), nil
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves it to the user config.
func setConfigKey(cfg *config.Config, key, value string) {
	stored, err := applyConfigKey(cfg, key, value, config.SetUserValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if strings.HasSuffix(strings.ToLower(key), ".api_key") {
		stored = config.MaskAPIKey(stored)
	}
	fmt.Printf("Set %s = %s\n", key, stored)
}

// applyConfigKey validates key=value against cfg and hands only that key to
// store. The rest of cfg holds env and project values and is never written.
func applyConfigKey(cfg *config.Config, key, value string, store func(key, value string) error) (string, error) {
	stored, err := setConfigValue(cfg, key, value)
	if err != nil {
		return "", err
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if err := store(strings.ToLower(key), stored); err != nil {
		return "", fmt.Errorf("saving config: %w", err)
	}
	return stored, nil
}

// getConfigValue retrieves a configuration value by dot-notation key.
// API keys are masked.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "guide.provider":
		return cfg.Guide.Provider, nil
	case "guide.language":
		return cfg.Guide.Language, nil
	case "gemini.api_key":
		return config.MaskAPIKey(cfg.Gemini.APIKey), nil
	case "gemini.model":
		return cfg.Gemini.Model, nil
	case "gemini.base_url":
		return cfg.Gemini.BaseURL, nil
	case "anthropic.api_key":
		return config.MaskAPIKey(cfg.Anthropic.APIKey), nil
	case "anthropic.model":
		return cfg.Anthropic.Model, nil
	case "log.level":
		return cfg.Log.Level, nil
	case "log.format":
		return cfg.Log.Format, nil
	case "log.file":
		return cfg.Log.File, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key and returns
// the value as stored.
func setConfigValue(cfg *config.Config, key, value string) (string, error) {
	switch strings.ToLower(key) {
	case "guide.provider":
		value = strings.ToLower(value)
		cfg.Guide.Provider = value
	case "guide.language":
		cfg.Guide.Language = value
	case "gemini.api_key":
		if err := config.ValidateAPIKey(config.ProviderGemini, value); err != nil {
			return "", err
		}
		cfg.Gemini.APIKey = value
	case "gemini.model":
		cfg.Gemini.Model = value
	case "gemini.base_url":
		cfg.Gemini.BaseURL = value
	case "anthropic.api_key":
		if err := config.ValidateAPIKey(config.ProviderAnthropic, value); err != nil {
			return "", err
		}
		cfg.Anthropic.APIKey = value
	case "anthropic.model":
		cfg.Anthropic.Model = value
	case "log.level":
		value = strings.ToLower(value)
		cfg.Log.Level = value
	case "log.format":
		switch value {
		case "json", "console":
		default:
			return "", fmt.Errorf("invalid log format %q (want json or console)", value)
		}
		cfg.Log.Format = value
	case "log.file":
		cfg.Log.File = value
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
	return value, nil
}
