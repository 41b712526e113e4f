package engine

import (
	"sort"
	"strings"
	"time"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting
// ============================================================================
// Aggregation keeps numeric values only; strings, bools and nulls are
// dropped, never coerced. An empty numeric set aggregates to 0 for every
// function.
// ============================================================================

// UnknownGroup is the group key for records missing the dimension field.
const UnknownGroup = "Unknown"

// Aggregate reduces the numeric values of field across records.
// Unknown aggregation names fall back to sum.
func Aggregate(records []Record, field string, fn Aggregation) float64 {
	values := numericValues(records, field)
	if len(values) == 0 {
		return 0
	}

	switch fn {
	case AggAvg:
		return sum(values) / float64(len(values))
	case AggMin:
		return values[0]
	case AggMax:
		return values[len(values)-1]
	case AggCount:
		return float64(len(values))
	default:
		return sum(values)
	}
}

// numericValues extracts the field's numeric values in ascending order.
// Sorting makes every aggregate bit-identical under record permutation.
func numericValues(records []Record, field string) []float64 {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := r.Get(field).Float(); ok {
			values = append(values, v)
		}
	}
	sort.Float64s(values)
	return values
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// ============================================================================
// GROUPING
// ============================================================================

// group is one bucket of records sharing a dimension key.
type group struct {
	Key     string
	Records []Record
}

// groupByField buckets records by the string form of field in a single
// forward scan. Bucket order is first-seen order of each key.
func groupByField(records []Record, field string) []group {
	index := make(map[string]int)
	groups := make([]group, 0)

	for _, r := range records {
		key := GroupKey(r, field)
		i, exists := index[key]
		if !exists {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{Key: key})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// GroupKey renders a record's dimension value as a group label.
// Missing and null values map to UnknownGroup.
func GroupKey(r Record, field string) string {
	v := r.Get(field)
	if v.IsNull() {
		return UnknownGroup
	}
	return v.Text()
}

// ============================================================================
// SORTING + LIMIT
// ============================================================================

// SortChartData reorders labels, every dataset's data and any per-label
// colors together. sortBy is "value" (first dataset), "label" or "date";
// anything else keeps the current order. sortOrder defaults to "desc".
func SortChartData(data *ChartData, sortBy, sortOrder string) {
	n := len(data.Labels)
	if n < 2 {
		return
	}

	var less func(a, b int) int
	switch strings.ToLower(sortBy) {
	case "value":
		if len(data.Datasets) == 0 {
			return
		}
		values := data.Datasets[0].Data
		less = func(a, b int) int { return compareFloat(values[a], values[b]) }
	case "label":
		less = func(a, b int) int {
			return strings.Compare(strings.ToLower(data.Labels[a]), strings.ToLower(data.Labels[b]))
		}
	case "date":
		less = func(a, b int) int {
			return compareInt(ParsePeriodOrder(data.Labels[a]), ParsePeriodOrder(data.Labels[b]))
		}
	default:
		return
	}

	desc := !strings.EqualFold(sortOrder, "asc")
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		c := less(indices[i], indices[j])
		if desc {
			return c > 0
		}
		return c < 0
	})

	data.Labels = permuteStrings(data.Labels, indices)
	for i := range data.Datasets {
		ds := &data.Datasets[i]
		ds.Data = permuteFloats(ds.Data, indices)
		if ds.BackgroundColor.IsPerLabel() && len(ds.BackgroundColor.PerLabel) == n {
			ds.BackgroundColor.PerLabel = permuteStrings(ds.BackgroundColor.PerLabel, indices)
		}
		if ds.BorderColor.IsPerLabel() && len(ds.BorderColor.PerLabel) == n {
			ds.BorderColor.PerLabel = permuteStrings(ds.BorderColor.PerLabel, indices)
		}
	}
}

// LimitChartData keeps the first limit labels. limit <= 0 keeps all.
func LimitChartData(data *ChartData, limit int) {
	if limit <= 0 || len(data.Labels) <= limit {
		return
	}
	data.Labels = data.Labels[:limit]
	for i := range data.Datasets {
		ds := &data.Datasets[i]
		if len(ds.Data) > limit {
			ds.Data = ds.Data[:limit]
		}
		if len(ds.BackgroundColor.PerLabel) > limit {
			ds.BackgroundColor.PerLabel = ds.BackgroundColor.PerLabel[:limit]
		}
		if len(ds.BorderColor.PerLabel) > limit {
			ds.BorderColor.PerLabel = ds.BorderColor.PerLabel[:limit]
		}
	}
}

// ParsePeriodOrder maps period labels to a sortable int.
// "Jan" → 1, "Jan-2024" → 202401, "Q2" → 2, "2024" → 202400. Unparseable → 0.
func ParsePeriodOrder(label string) int {
	label = strings.TrimSpace(label)
	if t, err := time.Parse("Jan-2006", label); err == nil {
		return t.Year()*100 + int(t.Month())
	}
	if t, err := time.Parse("2006-01", label); err == nil {
		return t.Year()*100 + int(t.Month())
	}
	if t, err := time.Parse("Jan", label); err == nil {
		return int(t.Month())
	}
	if t, err := time.Parse("January", label); err == nil {
		return int(t.Month())
	}
	if len(label) == 2 && (label[0] == 'Q' || label[0] == 'q') && label[1] >= '1' && label[1] <= '4' {
		return int(label[1] - '0')
	}
	if t, err := time.Parse("2006", label); err == nil {
		return t.Year() * 100
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func permuteStrings(in []string, indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = in[idx]
	}
	return out
}

func permuteFloats(in []float64, indices []int) []float64 {
	out := make([]float64, len(indices))
	for i, idx := range indices {
		if idx < len(in) {
			out[i] = in[idx]
		}
	}
	return out
}
