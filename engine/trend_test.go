package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeTrend_Increase(t *testing.T) {
	data := ChartData{
		Labels:   []string{"Mar", "Jan", "Feb"},
		Datasets: []ChartDataset{{Label: "sum(amount)", Data: []float64{110, 100, 90}}},
	}
	trend := DescribeTrend(data, 0)
	require.NotNil(t, trend)

	assert.Equal(t, TrendIncreased, trend.Direction)
	assert.Equal(t, "Jan", trend.EarliestPeriod)
	assert.Equal(t, "Mar", trend.LatestPeriod)
	assert.Equal(t, 10.0, trend.ChangeAmount)
	assert.InDelta(t, 10.0, trend.ChangePercent, 1e-9)
	assert.Equal(t, "↑ 10.0%", trend.Display)
	assert.Equal(t, "Jan – Mar", trend.Period())
}

func TestDescribeTrend_DecreaseAndFlat(t *testing.T) {
	down := DescribeTrend(ChartData{
		Labels:   []string{"Q1", "Q2"},
		Datasets: []ChartDataset{{Data: []float64{200, 150}}},
	}, 0)
	assert.Equal(t, TrendDecreased, down.Direction)
	assert.Equal(t, "↓ 25.0%", down.Display)

	flat := DescribeTrend(ChartData{
		Labels:   []string{"2023", "2024"},
		Datasets: []ChartDataset{{Data: []float64{1000, 1001}}},
	}, 0)
	assert.Equal(t, TrendUnchanged, flat.Direction)
}

func TestDescribeTrend_NonPeriodLabels(t *testing.T) {
	trend := DescribeTrend(ChartData{
		Labels:   []string{"North", "South"},
		Datasets: []ChartDataset{{Label: "sum(revenue)", Data: []float64{1, 2}}},
	}, 0)
	require.NotNil(t, trend)
	assert.Equal(t, TrendInsufficient, trend.Direction)
	assert.Equal(t, "All time", trend.Period())

	assert.Nil(t, DescribeTrend(ChartData{}, 0))
}
