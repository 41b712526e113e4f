package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/promptchart/engine"
)

func monthlyResponse() engine.ChartResponse {
	intent := engine.ChartIntent{
		Dataset:    "sales",
		Metrics:    []engine.Metric{{Field: "amount", Aggregation: engine.AggSum}},
		Dimensions: []engine.Dimension{{Field: "month"}},
		ChartType:  engine.ChartLine,
	}
	data := engine.ChartData{
		Labels:   []string{"Jan", "Feb", "Mar"},
		Datasets: []engine.ChartDataset{{Label: "sum(amount)", Data: []float64{83000, 93000, 92000}}},
	}
	return engine.BuildResponse(intent, data, engine.ResponseOptions{Warnings: []string{"UNKNOWN_OPERATOR: x"}})
}

func TestParseOutputFormat(t *testing.T) {
	f, err := parseOutputFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, outputCSV, f)

	_, err = parseOutputFormat("yaml")
	assert.Error(t, err)
}

func TestRender_Pretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, outputPretty, monthlyResponse()))

	out := buf.String()
	assert.Contains(t, out, "sum(amount) by month")
	assert.Contains(t, out, "83,000")
	assert.Contains(t, out, "268,000")
	assert.Contains(t, out, "sum(amount) (Jan – Mar): ↑ 10.8%")
	assert.Contains(t, out, "UNKNOWN_OPERATOR: x")
}

func TestRender_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, outputCSV, monthlyResponse()))
	assert.Equal(t, "Month,sum(amount)\nJan,83000\nFeb,93000\nMar,92000\nTotal,268000\n", buf.String())
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, outputJSON, monthlyResponse()))
	assert.Contains(t, buf.String(), `"labels":["Jan","Feb","Mar"]`)
}

func TestReadIntent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intent.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dataset":"orders","metrics":[{"field":"total","aggregation":"avg"}],"chartType":"bar"}`), 0o600))

	intent, err := readIntent(path)
	require.NoError(t, err)
	assert.Equal(t, "orders", intent.Dataset)
	assert.Equal(t, engine.AggAvg, intent.Metrics[0].Aggregation)

	_, err = readIntent(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
