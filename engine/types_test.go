package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	assert.Equal(t, KindNull, ValueOf(nil).Kind())
	assert.Equal(t, Number(3), ValueOf(3))
	assert.Equal(t, Number(3), ValueOf(int64(3)))
	assert.Equal(t, Number(5), ValueOf(int8(5)))
	assert.Equal(t, Number(-7), ValueOf(int16(-7)))
	assert.Equal(t, Number(200), ValueOf(uint8(200)))
	assert.Equal(t, Number(60000), ValueOf(uint16(60000)))
	assert.Equal(t, Number(2.5), ValueOf(json.Number("2.5")))
	assert.Equal(t, String("x"), ValueOf("x"))
	assert.Equal(t, Bool(true), ValueOf(true))
	assert.True(t, ValueOf([]string{"a"}).IsNull(), "non-scalars become null")
}

func TestValue_EqualIsStructural(t *testing.T) {
	assert.True(t, Number(1).Equal(Number(1)))
	assert.False(t, Number(1).Equal(String("1")))
	assert.False(t, Bool(true).Equal(Number(1)))
	assert.True(t, Null().Equal(Value{}))
}

func TestValue_JSON(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"a":"x","b":2,"c":true,"d":null}`), &rec))
	assert.Equal(t, String("x"), rec.Get("a"))
	assert.Equal(t, Number(2), rec.Get("b"))
	assert.Equal(t, Bool(true), rec.Get("c"))
	assert.True(t, rec.Has("d"))
	assert.True(t, rec.Get("d").IsNull())
	assert.False(t, rec.Has("e"))

	var v Value
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &v))

	out, err := json.Marshal(Record{"n": Number(1.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1.5}`, string(out))
}

func TestColor_JSON(t *testing.T) {
	var c Color
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &c))
	assert.True(t, c.IsPerLabel())
	assert.Equal(t, []string{"a", "b"}, c.PerLabel)

	require.NoError(t, json.Unmarshal([]byte(`"solid"`), &c))
	assert.False(t, c.IsPerLabel())
	assert.Equal(t, "solid", c.Solid)
}

func TestChartIntent_DecodesGeneratorJSON(t *testing.T) {
	raw := `{
		"dataset": "sales",
		"metrics": [{"field": "revenue", "aggregation": "sum"}],
		"dimensions": [{"field": "month", "granularity": "Monthly"}],
		"filters": [{"field": "region", "operator": "in", "value": ["North", "South"]}],
		"chartType": "line",
		"sortBy": "date",
		"sortOrder": "asc",
		"limit": 6
	}`
	var intent ChartIntent
	require.NoError(t, json.Unmarshal([]byte(raw), &intent))

	assert.Equal(t, "sales", intent.Dataset)
	assert.Equal(t, AggSum, intent.Metrics[0].Aggregation)
	assert.Equal(t, "sum(revenue)", intent.Metrics[0].DisplayLabel())
	assert.Equal(t, []any{"North", "South"}, intent.Filters[0].Value)
	assert.Equal(t, 6, intent.Limit)
	assert.False(t, intent.IsCircular())

	dim, ok := intent.PrimaryDimension()
	require.True(t, ok)
	assert.Equal(t, "month", dim.Field)
}
