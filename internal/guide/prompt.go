package guide

import (
	"fmt"
	"strings"
)

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.5-flash"
	// DefaultLanguage is the language answers are written in.
	DefaultLanguage = "Korean"
)

// UserContent builds the per-request content sent to the model.
func UserContent(city, building string) string {
	return fmt.Sprintf("City: %s, Building: %s", city, building)
}

// SystemInstruction returns the fixed steering text sent with every request.
// The answer structure is always the same five sections; only the output
// language varies.
func SystemInstruction(language string) string {
	language = strings.TrimSpace(language)
	if language == "" {
		language = DefaultLanguage
	}

	var b strings.Builder
	b.WriteString("You are a professional architecture guide. ")
	b.WriteString("When the user gives a city and a building, describe that building. ")
	fmt.Fprintf(&b, "You must answer kindly and only in %s. ", language)
	b.WriteString("Answer structure: 1. Summary, 2. Details (completion, architect, style), ")
	b.WriteString("3. Architectural features, 4. Historical significance, 5. Visiting tips")
	return b.String()
}

// Title is the heading rendered above an answer.
func Title(city, building string) string {
	return fmt.Sprintf("📍 %s (%s)", strings.TrimSpace(building), strings.TrimSpace(city))
}
