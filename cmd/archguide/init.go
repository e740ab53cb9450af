package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/archguide/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create a project configuration file",
	Long: `Write a .archguide.yaml template and check that an API key is available.

The directory argument is optional and defaults to the current directory.

Examples:
  archguide init              # Initialize current directory
  archguide init ./trip       # Initialize specific directory
  archguide init --force      # Overwrite an existing .archguide.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing .archguide.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", absPath, err)
	}

	fmt.Printf("Initializing archguide in %s...\n\n", absPath)

	written, err := createProjectConfig(absPath, initForce)
	if err != nil {
		return fmt.Errorf("creating project config: %w", err)
	}
	if written {
		printStatus("✓", "Created "+config.ProjectConfigName, color.FgGreen)
	} else {
		printStatus("⚠", config.ProjectConfigName+" already exists (use --force to overwrite)", color.FgYellow)
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	keyEnv := config.KeyEnvVar(cfg.Guide.Provider)
	key, keyErr := config.GetAPIKey(cfg)
	switch {
	case keyErr != nil:
		printStatus("⚠", keyEnv+" not set (you can set it later)", color.FgYellow)
	case config.ValidateAPIKey(cfg.Guide.Provider, key) != nil:
		printStatus("⚠", fmt.Sprintf("%s looks malformed (%s)", keyEnv, config.MaskAPIKey(key)), color.FgYellow)
	default:
		printStatus("✓", fmt.Sprintf("%s is set (%s, from %s)", keyEnv, config.MaskAPIKey(key), config.GetAPIKeySource(cfg)), color.FgGreen)
	}

	fmt.Printf("\n%s archguide initialization complete!\n\n", color.GreenString("✓"))
	fmt.Println("Next steps:")
	if keyErr != nil {
		fmt.Println("  1. Set your API key:")
		fmt.Printf("     export %s=your-key-here\n", keyEnv)
		fmt.Println("     # or put it in a .env file")
		fmt.Println()
	}
	fmt.Println("  2. Look up a building:")
	fmt.Println("     archguide ask Seoul \"63 Building\"")
	fmt.Println("     # or: archguide (for the interactive form)")

	return nil
}

// projectTemplate is the commented header written above the defaults.
const projectTemplate = `# archguide project configuration
# This file overrides defaults from ~/.config/archguide/config.yaml
# Keep secrets out of this file: use ${GEMINI_API_KEY} or a .env file.

`

// createProjectConfig writes .archguide.yaml in dir. It reports false when
// the file exists and force is not set.
func createProjectConfig(dir string, force bool) (bool, error) {
	configPath := filepath.Join(dir, config.ProjectConfigName)

	if _, err := os.Stat(configPath); err == nil && !force {
		return false, nil
	}

	defaults := config.Default()
	defaults.Gemini.APIKey = "${" + config.GeminiKeyEnv + "}"
	defaults.Anthropic.APIKey = "${" + config.AnthropicKeyEnv + "}"

	body, err := yaml.Marshal(defaults)
	if err != nil {
		return false, fmt.Errorf("encoding template: %w", err)
	}

	if err := os.WriteFile(configPath, append([]byte(projectTemplate), body...), 0644); err != nil {
		return false, err
	}
	return true, nil
}

// printStatus prints a status line with color
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}
