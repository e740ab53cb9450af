package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/archguide/internal/guide"
)

var (
	askCity     string
	askBuilding string
)

var askCmd = &cobra.Command{
	Use:   "ask [city] [building]",
	Short: "Look up one building and print the answer",
	Long: `Look up a single building without the interactive form.

Examples:
  archguide ask Seoul "63 Building"
  archguide ask --city Paris --building "Eiffel Tower"`,
	Args: cobra.MaximumNArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askCity, "city", "", "City the building is in")
	askCmd.Flags().StringVar(&askBuilding, "building", "", "Building name")
}

func runAsk(cmd *cobra.Command, args []string) error {
	city, building := askInputs(askCity, askBuilding, args)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, cleanup, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer cleanup()

	handler, err := newHandler(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	text, err := handler.FetchBuildingInfo(cmd.Context(), city, building)
	if err != nil {
		printLookupError(err)
		return &shownError{err: err}
	}

	fmt.Println(color.New(color.FgYellow, color.Bold).Sprint(guide.Title(city, building)))
	fmt.Println()
	fmt.Println(text)
	return nil
}

// askInputs fills whichever of city and building the flags left unset from
// the positional args, in order.
func askInputs(city, building string, args []string) (string, string) {
	rest := args
	if city == "" && len(rest) > 0 {
		city, rest = rest[0], rest[1:]
	}
	if building == "" && len(rest) > 0 {
		building = rest[0]
	}
	return city, building
}

// printLookupError writes the user-facing message for err to stderr.
func printLookupError(err error) {
	var gErr *guide.Error
	if !errors.As(err, &gErr) {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("✗"), err)
		return
	}
	if gErr.IsWarning() {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.YellowString("⚠"), gErr.UserMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("✗"), gErr.UserMessage())
}
