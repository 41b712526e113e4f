package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/promptchart/engine"
)

type shipment struct {
	Carrier string
	Week    int
	Parcels int
	Weight  float64
	Late    bool
}

func shipmentAdapter() *DomainAdapter[shipment] {
	return NewDomainAdapter[shipment]().
		Dimension("carrier", func(s shipment) any {
			if s.Carrier == "" {
				return nil
			}
			return s.Carrier
		}).
		Dimension("week", func(s shipment) any { return s.Week }).
		Dimension("late", func(s shipment) any { return s.Late }).
		Measure("parcels", func(s shipment) float64 { return float64(s.Parcels) }).
		Measure("weight", func(s shipment) float64 { return s.Weight })
}

func TestDomainAdapter_Bind(t *testing.T) {
	ds := shipmentAdapter().Bind("shipments", []shipment{
		{Carrier: "DHL", Week: 1, Parcels: 10, Weight: 12.5},
		{Carrier: "UPS", Week: 1, Parcels: 4, Weight: 3, Late: true},
		{Week: 2, Parcels: 7, Weight: 8},
	})

	assert.Equal(t, "shipments", ds.Name)
	assert.Equal(t, []string{"parcels", "weight"}, ds.Metrics)
	assert.Equal(t, []string{"carrier", "week", "late"}, ds.Dimensions)
	require.Len(t, ds.Records, 3)
	assert.Equal(t, engine.Number(1), ds.Records[0].Get("week"))
	assert.Equal(t, engine.Bool(true), ds.Records[1].Get("late"))
	assert.True(t, ds.Records[2].Get("carrier").IsNull())
}

func TestDomainAdapter_RegisteredDatasetQueries(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(shipmentAdapter().Bind("shipments", []shipment{
		{Carrier: "DHL", Week: 1, Parcels: 10},
		{Carrier: "UPS", Week: 1, Parcels: 4, Late: true},
		{Carrier: "DHL", Week: 2, Parcels: 6, Late: true},
	}))

	data, err := engine.New(r).Execute(engine.ChartIntent{
		Dataset:    "shipments",
		Metrics:    []engine.Metric{{Field: "parcels", Aggregation: engine.AggSum}},
		Dimensions: []engine.Dimension{{Field: "late"}},
		Filters:    []engine.Filter{{Field: "carrier", Operator: engine.OpEq, Value: "DHL"}},
		ChartType:  engine.ChartBar,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"false", "true"}, data.Labels)
	assert.Equal(t, []float64{10, 6}, data.Datasets[0].Data)
}
