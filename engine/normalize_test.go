package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGranularity(t *testing.T) {
	cases := map[Granularity]Granularity{
		"Weekly":    GranularityWeek,
		"daily":     GranularityDay,
		" MONTHLY ": GranularityMonth,
		"quarterly": GranularityQuarter,
		"annual":    GranularityYear,
		"yearly":    GranularityYear,
		"year":      GranularityYear,
	}
	for in, want := range cases {
		got, ok := NormalizeGranularity(in)
		assert.True(t, ok, string(in))
		assert.Equal(t, want, got, string(in))
	}

	got, ok := NormalizeGranularity("biweekly")
	assert.False(t, ok)
	assert.Equal(t, Granularity(""), got)
}

func TestNormalizeIntent(t *testing.T) {
	intent := ChartIntent{
		Dimensions: []Dimension{
			{Field: "month", Granularity: "Weekly"},
			{Field: "region", Granularity: "biweekly"},
			{Field: "category"},
		},
	}
	NormalizeIntent(&intent)

	assert.Equal(t, GranularityWeek, intent.Dimensions[0].Granularity)
	assert.Equal(t, Granularity(""), intent.Dimensions[1].Granularity)
	assert.Equal(t, Granularity(""), intent.Dimensions[2].Granularity)
}
