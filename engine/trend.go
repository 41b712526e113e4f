package engine

import (
	"fmt"
	"math"
	"sort"
)

// ============================================================================
// TREND — Change between the earliest and latest period of a series
// ============================================================================
// Only labels that parse as periods (see ParsePeriodOrder) take part.
// Charts grouped by region or product have no trend.
// ============================================================================

// Trend directions.
const (
	TrendIncreased    = "increased"
	TrendDecreased    = "decreased"
	TrendUnchanged    = "unchanged"
	TrendInsufficient = "insufficient data"
)

// Trend summarizes how one series moved across periods.
type Trend struct {
	Series         string  `json:"series"`
	Display        string  `json:"display"`
	EarliestPeriod string  `json:"earliestPeriod"`
	LatestPeriod   string  `json:"latestPeriod"`
	EarliestValue  float64 `json:"earliestValue"`
	LatestValue    float64 `json:"latestValue"`
	ChangeAmount   float64 `json:"changeAmount"`
	ChangePercent  float64 `json:"changePercent"`
	Direction      string  `json:"direction"`
}

// DescribeTrend computes the trend of dataset index series. It returns nil
// when the index is out of range.
func DescribeTrend(data ChartData, series int) *Trend {
	if series < 0 || series >= len(data.Datasets) {
		return nil
	}
	ds := data.Datasets[series]

	type entry struct {
		Label string
		Order int
		Value float64
	}
	entries := make([]entry, 0, len(data.Labels))
	for i, label := range data.Labels {
		order := ParsePeriodOrder(label)
		if order == 0 || i >= len(ds.Data) {
			continue
		}
		entries = append(entries, entry{Label: label, Order: order, Value: ds.Data[i]})
	}

	if len(entries) < 2 {
		return &Trend{Series: ds.Label, Display: "→ No trend", Direction: TrendInsufficient}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Order < entries[j].Order
	})
	earliest := entries[0]
	latest := entries[len(entries)-1]

	changeAmount := latest.Value - earliest.Value
	var changePercent float64
	if earliest.Value != 0 {
		changePercent = (changeAmount / earliest.Value) * 100
	}

	direction := TrendUnchanged
	if changePercent > 0.5 {
		direction = TrendIncreased
	} else if changePercent < -0.5 {
		direction = TrendDecreased
	}

	var display string
	switch direction {
	case TrendIncreased:
		display = fmt.Sprintf("↑ %.1f%%", math.Abs(changePercent))
	case TrendDecreased:
		display = fmt.Sprintf("↓ %.1f%%", math.Abs(changePercent))
	default:
		display = "→ No change"
	}

	return &Trend{
		Series:         ds.Label,
		Display:        display,
		EarliestPeriod: earliest.Label,
		LatestPeriod:   latest.Label,
		EarliestValue:  earliest.Value,
		LatestValue:    latest.Value,
		ChangeAmount:   changeAmount,
		ChangePercent:  changePercent,
		Direction:      direction,
	}
}

// Period renders the covered range, e.g. "Jan – Mar".
func (t *Trend) Period() string {
	if t == nil || t.EarliestPeriod == "" {
		return "All time"
	}
	if t.EarliestPeriod == t.LatestPeriod {
		return t.EarliestPeriod
	}
	return fmt.Sprintf("%s – %s", t.EarliestPeriod, t.LatestPeriod)
}
