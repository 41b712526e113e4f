package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// AGGREGATE
// ============================================================================

func TestAggregate_EmptyIsZero(t *testing.T) {
	for _, fn := range []Aggregation{AggSum, AggAvg, AggMin, AggMax, AggCount, "median"} {
		assert.Equal(t, 0.0, Aggregate(nil, "amount", fn), string(fn))
	}

	onlyStrings := []Record{NewRecord(map[string]any{"amount": "n/a"}), NewRecord(map[string]any{"amount": nil})}
	assert.Equal(t, 0.0, Aggregate(onlyStrings, "amount", AggMin))
	assert.Equal(t, 0.0, Aggregate(onlyStrings, "amount", AggCount))
}

func TestAggregate_Functions(t *testing.T) {
	records := []Record{
		NewRecord(map[string]any{"v": 4.0}),
		NewRecord(map[string]any{"v": 1.0}),
		NewRecord(map[string]any{"v": "skip"}),
		NewRecord(map[string]any{"v": true}),
		NewRecord(map[string]any{"other": 100.0}),
		NewRecord(map[string]any{"v": 7.0}),
	}

	assert.Equal(t, 12.0, Aggregate(records, "v", AggSum))
	assert.Equal(t, 4.0, Aggregate(records, "v", AggAvg))
	assert.Equal(t, 1.0, Aggregate(records, "v", AggMin))
	assert.Equal(t, 7.0, Aggregate(records, "v", AggMax))
	assert.Equal(t, 3.0, Aggregate(records, "v", AggCount))
	assert.Equal(t, 12.0, Aggregate(records, "v", "median"), "unknown function falls back to sum")
}

func TestAggregate_PermutationInvariant(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 1e16, -1e16, 3.7, 42.42, -0.05}
	records := make([]Record, len(values))
	for i, v := range values {
		records[i] = NewRecord(map[string]any{"v": v})
	}

	rng := rand.New(rand.NewSource(7))
	for _, fn := range []Aggregation{AggSum, AggAvg, AggMin, AggMax, AggCount} {
		want := Aggregate(records, "v", fn)
		for range 20 {
			shuffled := append([]Record(nil), records...)
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
			assert.Equal(t, want, Aggregate(shuffled, "v", fn), string(fn))
		}
	}
}

// ============================================================================
// GROUPING
// ============================================================================

func TestGroupByField_FirstSeenOrder(t *testing.T) {
	records := []Record{
		NewRecord(map[string]any{"k": "B"}),
		NewRecord(map[string]any{"k": "A"}),
		NewRecord(map[string]any{"k": "B"}),
		NewRecord(map[string]any{"k": "C"}),
	}
	groups := groupByField(records, "k")

	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	assert.Equal(t, []string{"B", "A", "C"}, keys)
	assert.Len(t, groups[0].Records, 2)
}

func TestGroupKey(t *testing.T) {
	r := NewRecord(map[string]any{"s": "North", "n": 2024, "f": 1.5, "b": false, "null": nil})

	assert.Equal(t, "North", GroupKey(r, "s"))
	assert.Equal(t, "2024", GroupKey(r, "n"))
	assert.Equal(t, "1.5", GroupKey(r, "f"))
	assert.Equal(t, "false", GroupKey(r, "b"))
	assert.Equal(t, UnknownGroup, GroupKey(r, "null"))
	assert.Equal(t, UnknownGroup, GroupKey(r, "missing"))
}

// ============================================================================
// SORTING + LIMIT
// ============================================================================

func sortFixture() ChartData {
	return ChartData{
		Labels: []string{"Mar", "Jan", "Feb"},
		Datasets: []ChartDataset{
			{
				Label:           "sum(amount)",
				Data:            []float64{30, 10, 20},
				BackgroundColor: LabelColors([]string{"c-mar", "c-jan", "c-feb"}),
				BorderColor:     SolidColor("border"),
			},
			{Label: "sum(quantity)", Data: []float64{3, 1, 2}},
		},
	}
}

func TestSortChartData_ByValueDefaultsDesc(t *testing.T) {
	data := sortFixture()
	SortChartData(&data, "value", "")

	assert.Equal(t, []string{"Mar", "Feb", "Jan"}, data.Labels)
	assert.Equal(t, []float64{30, 20, 10}, data.Datasets[0].Data)
	assert.Equal(t, []float64{3, 2, 1}, data.Datasets[1].Data)
	assert.Equal(t, []string{"c-mar", "c-feb", "c-jan"}, data.Datasets[0].BackgroundColor.PerLabel)
	assert.Equal(t, "border", data.Datasets[0].BorderColor.Solid)
}

func TestSortChartData_ByDateAsc(t *testing.T) {
	data := sortFixture()
	SortChartData(&data, "date", "asc")
	assert.Equal(t, []string{"Jan", "Feb", "Mar"}, data.Labels)
	assert.Equal(t, []float64{10, 20, 30}, data.Datasets[0].Data)
}

func TestSortChartData_ByLabel(t *testing.T) {
	data := ChartData{Labels: []string{"beta", "Alpha", "gamma"}, Datasets: []ChartDataset{{Data: []float64{1, 2, 3}}}}
	SortChartData(&data, "label", "asc")
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, data.Labels)
	assert.Equal(t, []float64{2, 1, 3}, data.Datasets[0].Data)
}

func TestSortChartData_UnknownKeyIsNoop(t *testing.T) {
	data := sortFixture()
	SortChartData(&data, "size", "asc")
	assert.Equal(t, sortFixture(), data)
}

func TestSortChartData_StableOnTies(t *testing.T) {
	data := ChartData{Labels: []string{"x", "y", "z"}, Datasets: []ChartDataset{{Data: []float64{5, 5, 5}}}}
	SortChartData(&data, "value", "desc")
	assert.Equal(t, []string{"x", "y", "z"}, data.Labels)
}

func TestLimitChartData(t *testing.T) {
	data := sortFixture()
	LimitChartData(&data, 2)
	assert.Equal(t, []string{"Mar", "Jan"}, data.Labels)
	assert.Equal(t, []float64{30, 10}, data.Datasets[0].Data)
	assert.Len(t, data.Datasets[0].BackgroundColor.PerLabel, 2)
	assert.Equal(t, []float64{3, 1}, data.Datasets[1].Data)

	untouched := sortFixture()
	LimitChartData(&untouched, 0)
	require.Len(t, untouched.Labels, 3)
}

func TestParsePeriodOrder(t *testing.T) {
	cases := map[string]int{
		"Jan":      1,
		"December": 12,
		"Feb-2024": 202402,
		"2024-03":  202403,
		"Q3":       3,
		"2023":     202300,
		"North":    0,
	}
	for label, want := range cases {
		assert.Equal(t, want, ParsePeriodOrder(label), label)
	}
}
