package translator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spektr-org/promptchart/engine"
)

// ============================================================================
// RESPONSE PARSER — Extracts ChartIntent from AI response
// ============================================================================
// Models wrap JSON in markdown fences or add a sentence of chatter around
// it. The parser strips fences, then falls back to the outermost {...}.
// ============================================================================

// ParseIntent extracts a ChartIntent from the AI's JSON response.
func ParseIntent(response string) (engine.ChartIntent, error) {
	cleaned := stripFences(response)

	var intent engine.ChartIntent
	err := json.Unmarshal([]byte(cleaned), &intent)
	if err != nil {
		if obj, ok := outermostObject(cleaned); ok {
			err = json.Unmarshal([]byte(obj), &intent)
		}
	}
	if err != nil {
		return engine.ChartIntent{}, fmt.Errorf("%w: failed to parse response: %v (response: %.200s)", ErrGeneration, err, cleaned)
	}
	return intent, nil
}

// stripFences removes markdown code blocks if present.
func stripFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

func outermostObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
