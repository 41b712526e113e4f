package engine

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// ============================================================================
// NORMALIZER — Canonical vocabulary before execution
// ============================================================================
// Generators phrase granularity loosely ("Weekly", "annual"). The normalizer
// is the last writer of an intent; it degrades, it never fails.
// ============================================================================

var granularitySynonyms = map[string]Granularity{
	"daily":     GranularityDay,
	"weekly":    GranularityWeek,
	"monthly":   GranularityMonth,
	"quarterly": GranularityQuarter,
	"yearly":    GranularityYear,
	"annual":    GranularityYear,
	"day":       GranularityDay,
	"week":      GranularityWeek,
	"month":     GranularityMonth,
	"quarter":   GranularityQuarter,
	"year":      GranularityYear,
}

// NormalizeGranularity maps a loose granularity to the canonical one.
// Unrecognized input returns "" (unset) and false.
func NormalizeGranularity(g Granularity) (Granularity, bool) {
	canonical, ok := granularitySynonyms[strings.ToLower(strings.TrimSpace(string(g)))]
	return canonical, ok
}

// NormalizeIntent rewrites dimension granularities in place.
func NormalizeIntent(intent *ChartIntent) {
	for i := range intent.Dimensions {
		dim := &intent.Dimensions[i]
		if dim.Granularity == "" {
			continue
		}
		canonical, ok := NormalizeGranularity(dim.Granularity)
		if !ok {
			log.WithFields(log.Fields{
				"field":       dim.Field,
				"granularity": dim.Granularity,
			}).Warn("🔧 NormalizeIntent: unrecognized granularity dropped")
		}
		dim.Granularity = canonical
	}
}
