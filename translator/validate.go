package translator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spektr-org/promptchart/engine"
)

// ============================================================================
// VALIDATION — Prompt sanitizing + structural intent checks
// ============================================================================

// MaxPromptLength caps sanitized prompts, in characters.
const MaxPromptLength = 1000

// MaxLimit is the largest accepted intent limit.
const MaxLimit = 100

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// SanitizePrompt strips HTML tags and JSON braces, trims whitespace and
// caps the result at MaxPromptLength characters. An empty result means the
// prompt is unusable.
func SanitizePrompt(prompt string) string {
	sanitized := htmlTag.ReplaceAllString(prompt, "")
	sanitized = strings.NewReplacer("{", "", "}", "").Replace(sanitized)
	sanitized = strings.TrimSpace(sanitized)

	if utf8.RuneCountInString(sanitized) > MaxPromptLength {
		sanitized = string([]rune(sanitized)[:MaxPromptLength])
	}
	return sanitized
}

// ValidateIntent checks the structure of a normalized intent. It does not
// check that the dataset or fields exist; execution handles that.
func ValidateIntent(intent engine.ChartIntent) error {
	var problems []string

	if strings.TrimSpace(intent.Dataset) == "" {
		problems = append(problems, "/dataset: is required")
	}
	if len(intent.Metrics) == 0 {
		problems = append(problems, "/metrics: must have at least 1 item")
	}
	for i, m := range intent.Metrics {
		if strings.TrimSpace(m.Field) == "" {
			problems = append(problems, fmt.Sprintf("/metrics/%d/field: is required", i))
		}
	}
	for i, d := range intent.Dimensions {
		if strings.TrimSpace(d.Field) == "" {
			problems = append(problems, fmt.Sprintf("/dimensions/%d/field: is required", i))
		}
	}
	for i, f := range intent.Filters {
		if strings.TrimSpace(f.Field) == "" {
			problems = append(problems, fmt.Sprintf("/filters/%d/field: is required", i))
		}
	}
	if strings.TrimSpace(intent.ChartType) == "" {
		problems = append(problems, "/chartType: is required")
	}
	if intent.Limit < 0 || intent.Limit > MaxLimit {
		problems = append(problems, fmt.Sprintf("/limit: must be between 0 and %d", MaxLimit))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidIntent, strings.Join(problems, ", "))
	}
	return nil
}
