package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSpec_DerivedTitleAndAxes(t *testing.T) {
	spec := BuildSpec(ChartIntent{
		Dataset:    "sales",
		Metrics:    []Metric{{Field: "revenue", Aggregation: AggSum}},
		Dimensions: []Dimension{{Field: "region"}},
		ChartType:  ChartBar,
	})

	assert.Equal(t, "bar", spec.Type)
	assert.Equal(t, "sum(revenue) by region", spec.Title)
	require.NotNil(t, spec.XAxis)
	assert.Equal(t, Axis{Label: "region", Type: "category"}, *spec.XAxis)
	require.NotNil(t, spec.YAxis)
	assert.Equal(t, Axis{Label: "sum(revenue)", Type: "linear"}, *spec.YAxis)
	assert.Equal(t, Legend{Display: false, Position: "top"}, spec.Legend)
}

func TestBuildSpec_NoDimension(t *testing.T) {
	spec := BuildSpec(ChartIntent{
		Metrics:   []Metric{{Field: "amount", Aggregation: AggAvg, Label: "Average"}},
		ChartType: ChartLine,
	})
	assert.Equal(t, "Average by value", spec.Title)
	assert.Nil(t, spec.XAxis)
	assert.Equal(t, "Average", spec.YAxis.Label)
}

func TestBuildSpec_ExplicitTitleAndLegend(t *testing.T) {
	spec := BuildSpec(ChartIntent{
		Metrics:   []Metric{{Field: "a", Aggregation: AggSum}, {Field: "b", Aggregation: AggSum}},
		ChartType: ChartBar,
		Title:     "Custom",
	})
	assert.Equal(t, "Custom", spec.Title)
	assert.True(t, spec.Legend.Display, "more than one metric shows the legend")

	pie := BuildSpec(ChartIntent{Metrics: []Metric{{Field: "a", Aggregation: AggSum}}, ChartType: ChartPie})
	assert.True(t, pie.Legend.Display)
}

func TestBuildResponse_JSONShape(t *testing.T) {
	intent := ChartIntent{
		Dataset:    "sales",
		Metrics:    []Metric{{Field: "revenue", Aggregation: AggSum}},
		Dimensions: []Dimension{{Field: "region"}},
		ChartType:  ChartPie,
	}
	data := ChartData{
		Labels: []string{"North", "South"},
		Datasets: []ChartDataset{{
			Label:           "sum(revenue)",
			Data:            []float64{145000, 123000},
			BackgroundColor: LabelColors([]string{"a", "b"}),
			BorderColor:     SolidColor("c"),
			BorderWidth:     1,
		}},
	}
	resp := BuildResponse(intent, data, ResponseOptions{
		RequestID: "abc",
		Now:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	meta := decoded["metadata"].(map[string]any)
	assert.Equal(t, "2025-06-01T12:00:00Z", meta["generatedAt"])
	assert.Equal(t, float64(2), meta["recordCount"])
	assert.Equal(t, "abc", meta["requestId"])
	assert.NotContains(t, meta, "warnings")

	ds := decoded["data"].(map[string]any)["datasets"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{"a", "b"}, ds["backgroundColor"])
	assert.Equal(t, "c", ds["borderColor"])

	spec := decoded["chartSpec"].(map[string]any)
	assert.Equal(t, "pie", spec["type"])
	assert.Contains(t, spec, "xAxis")
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, 8, p.Size())
	assert.Equal(t, "rgba(59, 130, 246, 0.8)", p.Fill(0))
	assert.Equal(t, "rgba(59, 130, 246, 0.8)", p.Fill(8))
	assert.Equal(t, "rgba(249, 115, 22, 1)", p.Stroke(7))
	assert.Len(t, p.Fills(11), 11)
	assert.Equal(t, p.Fill(2), p.Fills(11)[10])
}
