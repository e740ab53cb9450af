package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ShayCichocki/archguide/internal/config"
	"github.com/ShayCichocki/archguide/internal/logging"
)

var (
	verbose bool
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "archguide",
	Short: "Look up any building instantly",
	Long: `archguide asks a generative AI model to describe a building.

Enter a city and a building name and get back a short guide: a summary,
completion date, architect and style, architectural features, historical
significance and visiting tips.

With no arguments, launches an interactive form. Use "archguide ask" for a
single lookup from scripts.

The API key is read from GEMINI_API_KEY (or ANTHROPIC_API_KEY when
guide.provider is "anthropic"), a .env file, or the config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(envFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var shown *shownError
		if !errors.As(err, &shown) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// shownError marks an error whose message was already printed.
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Also write logs to stderr (non-interactive commands)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file with API keys")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadEnvFile loads secrets from a dotenv file. Existing environment
// variables win, and a missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from cfg. withStderr tees output to
// stderr when --verbose is set; the interactive form never does since it
// owns the terminal.
func newLogger(cfg *config.Config, withStderr bool) (*zap.Logger, func(), error) {
	opts := logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}
	if withStderr && verbose {
		opts.Stderr = os.Stderr
	}
	logger, cleanup, err := logging.New(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, cleanup, nil
}
