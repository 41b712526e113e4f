package schema

import (
	"sort"
	"strings"

	"github.com/spektr-org/promptchart/engine"
)

// ============================================================================
// SCHEMA — Describes the shape of a dataset for the intent generator
// ============================================================================
// Built from a DataAdapter at startup. The translator renders it into the
// prompt; the HTTP and MCP surfaces list it.
// ============================================================================

const maxSamples = 5

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string          `json:"name"`
	RecordCount int             `json:"recordCount"`
	Dimensions  []DimensionMeta `json:"dimensions"`
	Measures    []MeasureMeta   `json:"measures"`
}

// DimensionMeta describes a field used for grouping/filtering.
type DimensionMeta struct {
	Key             string   `json:"key"`
	DisplayName     string   `json:"displayName"`
	SampleValues    []string `json:"sampleValues"`
	IsTemporal      bool     `json:"isTemporal,omitempty"`
	CardinalityHint string   `json:"cardinalityHint,omitempty"` // "low", "medium", "high"
}

// MeasureMeta describes a numeric field used for aggregation.
type MeasureMeta struct {
	Key                string   `json:"key"`
	DisplayName        string   `json:"displayName"`
	Aggregations       []string `json:"aggregations"`
	DefaultAggregation string   `json:"defaultAggregation"`
}

// DefaultMeasure creates a MeasureMeta with sensible defaults.
func DefaultMeasure(key string) MeasureMeta {
	return MeasureMeta{
		Key:         key,
		DisplayName: toDisplayName(key),
		Aggregations: []string{
			string(engine.AggSum), string(engine.AggAvg), string(engine.AggMin),
			string(engine.AggMax), string(engine.AggCount),
		},
		DefaultAggregation: string(engine.AggSum),
	}
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// ============================================================================
// DESCRIBE — Config from a DataAdapter
// ============================================================================

// FromAdapter describes every dataset the adapter lists, in order.
// Datasets whose records cannot be read are described from metadata only.
func FromAdapter(adapter engine.DataAdapter) []Config {
	names := adapter.ListDatasets()
	configs := make([]Config, 0, len(names))
	for _, name := range names {
		configs = append(configs, Describe(adapter, name))
	}
	return configs
}

// Describe builds the Config of one dataset.
func Describe(adapter engine.DataAdapter, name string) Config {
	records, _ := adapter.RecordsOf(name)

	cfg := Config{Name: name, RecordCount: len(records)}
	for _, key := range adapter.MetricsOf(name) {
		cfg.Measures = append(cfg.Measures, DefaultMeasure(key))
	}
	for _, key := range adapter.DimensionsOf(name) {
		cfg.Dimensions = append(cfg.Dimensions, describeDimension(key, records))
	}
	return cfg
}

func describeDimension(key string, records []engine.Record) DimensionMeta {
	unique := make(map[string]bool)
	for _, r := range records {
		v := r.Get(key)
		if v.IsNull() {
			continue
		}
		unique[v.Text()] = true
	}

	return DimensionMeta{
		Key:             key,
		DisplayName:     toDisplayName(key),
		SampleValues:    collectSamples(unique, maxSamples),
		IsTemporal:      isTemporal(key, unique),
		CardinalityHint: cardinality(len(unique)),
	}
}

// isTemporal is true for well-known period field names or when every
// distinct value parses as a period label.
func isTemporal(key string, unique map[string]bool) bool {
	switch strings.ToLower(key) {
	case "date", "day", "week", "month", "quarter", "year", "period":
		return true
	}
	if len(unique) == 0 {
		return false
	}
	for v := range unique {
		if engine.ParsePeriodOrder(v) == 0 {
			return false
		}
	}
	return true
}

func cardinality(n int) string {
	switch {
	case n == 0:
		return ""
	case n <= 10:
		return "low"
	case n <= 100:
		return "medium"
	default:
		return "high"
	}
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// toDisplayName cleans a field key for human display.
// "story_points" → "Story Points", "activeUsers" → "Active Users"
func toDisplayName(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' && s[i-1] >= 'a' && s[i-1] <= 'z' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	s = strings.ReplaceAll(b.String(), "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// collectSamples picks up to limit representative values.
func collectSamples(uniqueSet map[string]bool, limit int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}

	// Sort for deterministic output
	sort.Strings(samples)

	if len(samples) > limit {
		samples = samples[:limit]
	}
	return samples
}
