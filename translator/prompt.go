package translator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spektr-org/promptchart/engine"
	"github.com/spektr-org/promptchart/schema"
)

// ============================================================================
// PROMPT BUILDER — Schema-Driven AI Prompt Generation
// ============================================================================
// SystemPrompt fixes the output contract. BuildPrompt renders the datasets
// the generator may choose from:
//   - Measures → listed with aggregation types
//   - Dimensions → listed with sample values
//   - Temporal → flagged for time-based requests
//
// Total data sent to AI: field names and a handful of samples. Never records.
// ============================================================================

// SystemPrompt is the instruction sent ahead of every request.
const SystemPrompt = `You are a data visualization assistant. Convert natural language requests into JSON chart specifications.

Respond with valid JSON only:
{
  "dataset": string,
  "metrics": [{"field": string, "aggregation": "sum"|"avg"|"min"|"max"|"count", "label": string}],
  "dimensions": [{"field": string, "granularity": "day"|"week"|"month"|"quarter"|"year"}],
  "filters": [{"field": string, "operator": "eq"|"neq"|"gt"|"gte"|"lt"|"lte"|"in"|"between", "value": any}],
  "chartType": "bar"|"line"|"pie"|"doughnut"|"area"|"scatter",
  "title": string,
  "sortBy": "value"|"label"|"date",
  "sortOrder": "asc"|"desc",
  "limit": integer
}

Use only metrics/dimensions from the chosen dataset. Choose appropriate chart types.`

// BuildPrompt renders the dataset context and the user's request as the
// user message.
func BuildPrompt(prompt string, ictx IntentContext) string {
	var b strings.Builder

	// ── Datasets ──────────────────────────────────────────────────────────
	b.WriteString("Available datasets:\n")
	for _, ds := range ictx.Datasets {
		b.WriteString(buildDatasetDescription(ds))
	}

	// ── Chart Types ───────────────────────────────────────────────────────
	chartTypes := ictx.ChartTypes
	if len(chartTypes) == 0 {
		chartTypes = engine.ChartTypes
	}
	b.WriteString(fmt.Sprintf("Chart types: %s\n", strings.Join(chartTypes, ", ")))

	// ── Rules ─────────────────────────────────────────────────────────────
	b.WriteString(buildRules(ictx))

	// ── Caller Context ────────────────────────────────────────────────────
	if len(ictx.Extra) > 0 {
		extraJSON, err := json.MarshalIndent(ictx.Extra, "", "  ")
		if err == nil {
			b.WriteString(fmt.Sprintf("\nAdditional context:\n%s\n", string(extraJSON)))
		}
	}

	// ── Request ───────────────────────────────────────────────────────────
	b.WriteString("\nRequest: ")
	b.WriteString(prompt)
	return b.String()
}

// ============================================================================
// SECTION BUILDERS
// ============================================================================

func buildDatasetDescription(ds schema.Config) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("  %s: metrics=[%s], dimensions=[%s]\n",
		ds.Name, strings.Join(ds.MeasureKeys(), ", "), strings.Join(ds.DimensionKeys(), ", ")))

	for _, d := range ds.Dimensions {
		if len(d.SampleValues) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("    - %s values: [%s]", d.Key, strings.Join(quotedValues(d.SampleValues), ", ")))
		if d.IsTemporal {
			b.WriteString(" [TEMPORAL]")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func buildRules(ictx IntentContext) string {
	var temporal []string
	for _, ds := range ictx.Datasets {
		for _, d := range ds.Dimensions {
			if d.IsTemporal {
				temporal = append(temporal, fmt.Sprintf("%s.%s", ds.Name, d.Key))
			}
		}
	}

	var b strings.Builder
	b.WriteString(`
RULES:
- Filters are AND-ed. "in" takes a list, "between" takes [low, high].
- Only the first dimension is used for grouping.
- Filter values must match the listed values exactly (case-sensitive).
- Omit "dimensions" for a single total per metric.
- "limit" is between 1 and 100; omit it to keep every group.
`)
	if len(temporal) > 0 {
		b.WriteString(fmt.Sprintf("- Time fields (%s): prefer chartType \"line\" with sortBy \"date\", sortOrder \"asc\".\n",
			strings.Join(temporal, ", ")))
	}
	return b.String()
}

// ============================================================================
// HELPERS
// ============================================================================

func quotedValues(vals []string) []string {
	quoted := make([]string, len(vals))
	for i, v := range vals {
		quoted[i] = fmt.Sprintf("\"%s\"", v)
	}
	return quoted
}
