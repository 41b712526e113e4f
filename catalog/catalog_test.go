package catalog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/promptchart/engine"
)

// ============================================================================
// MOCK ADAPTER
// ============================================================================

func TestMockAdapter_ListsFixturesInOrder(t *testing.T) {
	m := NewMockAdapter()
	assert.Equal(t, []string{"sales", "users", "products", "orders", "inventory"}, m.ListDatasets())
}

func TestMockAdapter_Metadata(t *testing.T) {
	m := NewMockAdapter()

	assert.Equal(t, []string{"amount", "quantity", "revenue"}, m.MetricsOf("sales"))
	assert.Equal(t, []string{"month", "quarter", "year", "region", "category"}, m.DimensionsOf("sales"))
	assert.Equal(t, []string{"signups", "activeUsers", "sessions"}, m.MetricsOf("users"))
	assert.Equal(t, []string{"quantity"}, m.MetricsOf("inventory"))

	assert.Empty(t, m.MetricsOf("foo"))
	assert.Empty(t, m.DimensionsOf("foo"))
}

func TestMockAdapter_MetadataIsCopied(t *testing.T) {
	m := NewMockAdapter()
	metrics := m.MetricsOf("sales")
	metrics[0] = "tampered"
	assert.Equal(t, "amount", m.MetricsOf("sales")[0])
}

func TestMockAdapter_Records(t *testing.T) {
	m := NewMockAdapter()

	records, err := m.RecordsOf("sales")
	require.NoError(t, err)
	require.Len(t, records, 6)

	first := records[0]
	assert.Equal(t, engine.String("Jan"), first.Get("month"))
	assert.Equal(t, engine.Number(2024), first.Get("year"))
	assert.Equal(t, engine.Number(45000), first.Get("amount"))

	records, err = m.RecordsOf("inventory")
	require.NoError(t, err)
	assert.Equal(t, engine.Number(0), records[3].Get("quantity"))
}

func TestMockAdapter_UnknownDataset(t *testing.T) {
	m := NewMockAdapter()
	_, err := m.RecordsOf("foo")
	require.Error(t, err)

	var unknown *engine.UnknownDatasetError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "foo", unknown.Name)
}

// ============================================================================
// REGISTRY
// ============================================================================

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Dataset{Name: "a"}))

	err := r.Register(Dataset{Name: "a"})
	assert.ErrorIs(t, err, ErrDuplicateDataset)
	assert.Error(t, r.Register(Dataset{}))
	assert.True(t, r.Has("a"))
	assert.False(t, r.Has("b"))
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(Dataset{Name: "a"})
	assert.Panics(t, func() { r.MustRegister(Dataset{Name: "a"}) })
}

// ============================================================================
// CATALOG COMPOSITION
// ============================================================================

func TestCatalog_FirstAdapterWins(t *testing.T) {
	csvAdapter, err := NewCSVAdapter(
		CSVSource{Name: "sales", Data: []byte("region,amount\nWest,1\n")},
		CSVSource{Name: "tickets", Data: []byte("team,count\nOps,3\nDev,4\n")},
	)
	require.NoError(t, err)

	c := New(NewMockAdapter(), csvAdapter)
	assert.Equal(t, []string{"sales", "users", "products", "orders", "inventory", "tickets"}, c.ListDatasets())

	sales, err := c.RecordsOf("sales")
	require.NoError(t, err)
	assert.Len(t, sales, 6, "mock sales must shadow the CSV dataset")

	tickets, err := c.RecordsOf("tickets")
	require.NoError(t, err)
	assert.Len(t, tickets, 2)
	assert.Equal(t, []string{"count"}, c.MetricsOf("tickets"))
	assert.Equal(t, []string{"team"}, c.DimensionsOf("tickets"))
}

func TestCatalog_Unknown(t *testing.T) {
	c := New(NewMockAdapter())

	_, err := c.RecordsOf("foo")
	var unknown *engine.UnknownDatasetError
	assert.True(t, errors.As(err, &unknown))
	assert.Empty(t, c.MetricsOf("foo"))
	assert.Empty(t, c.DimensionsOf("foo"))
}

// ============================================================================
// CSV ADAPTER
// ============================================================================

// ── Test Data ─────────────────────────────────────────────────────────────────

var ticketsCSV = []byte("Ticket ID,Team,Priority,Story Points,Hours Spent\n" +
	"T-1,Platform,High,3,6.5\n" +
	"T-2,Platform,Low,5,\n" +
	"T-3,Web,High,n/a,2\n" +
	"T-4,,Low,8,4\n")

func TestParseCSV_DeclaredColumns(t *testing.T) {
	ds, err := ParseCSV(CSVSource{
		Name:    "tickets",
		Data:    ticketsCSV,
		Metrics: []string{"story_points", "hours_spent"},
	})
	require.NoError(t, err)

	assert.Equal(t, "tickets", ds.Name)
	assert.Equal(t, []string{"story_points", "hours_spent"}, ds.Metrics)
	assert.Equal(t, []string{"ticket_id", "team", "priority"}, ds.Dimensions)
	require.Len(t, ds.Records, 4)

	assert.Equal(t, engine.Number(3), ds.Records[0].Get("story_points"))
	assert.Equal(t, engine.Number(6.5), ds.Records[0].Get("hours_spent"))
	assert.True(t, ds.Records[1].Get("hours_spent").IsNull(), "empty cell is null")
	assert.Equal(t, engine.String("n/a"), ds.Records[2].Get("story_points"), "non-numeric metric cell stays a string")
	assert.True(t, ds.Records[3].Get("team").IsNull())
	assert.Equal(t, engine.String("Platform"), ds.Records[0].Get("team"))
}

func TestParseCSV_InfersColumns(t *testing.T) {
	ds, err := ParseCSV(CSVSource{Name: "tickets", Data: ticketsCSV})
	require.NoError(t, err)

	// story_points has "n/a" so it is a dimension
	assert.Equal(t, []string{"hours_spent"}, ds.Metrics)
	assert.Equal(t, []string{"ticket_id", "team", "priority", "story_points"}, ds.Dimensions)
}

func TestParseCSV_DeclaredDimensionNotInferredAsMetric(t *testing.T) {
	ds, err := ParseCSV(CSVSource{
		Name:       "yearly",
		Data:       []byte("year,total\n2023,10\n2024,12\n"),
		Dimensions: []string{"year"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"total"}, ds.Metrics)
	assert.Equal(t, []string{"year"}, ds.Dimensions)
	assert.Equal(t, engine.String("2023"), ds.Records[0].Get("year"))
}

func TestParseCSV_NonFiniteCellsAreNotNumbers(t *testing.T) {
	data := []byte("region,amount\nNorth,10\nSouth,NaN\nWest,Inf\nEast,-infinity\n")

	// ── Inferred: the column is not numeric ──
	ds, err := ParseCSV(CSVSource{Name: "regions", Data: data})
	require.NoError(t, err)
	assert.Empty(t, ds.Metrics)
	assert.Equal(t, []string{"region", "amount"}, ds.Dimensions)

	// ── Declared: the cells stay strings and the chart still encodes ──
	a, err := NewCSVAdapter(CSVSource{Name: "regions", Data: data, Metrics: []string{"amount"}})
	require.NoError(t, err)
	records, err := a.RecordsOf("regions")
	require.NoError(t, err)
	assert.Equal(t, engine.String("NaN"), records[1].Get("amount"))
	assert.Equal(t, engine.String("Inf"), records[2].Get("amount"))

	resp, err := engine.New(a).Respond(engine.ChartIntent{
		Dataset:    "regions",
		Metrics:    []engine.Metric{{Field: "amount", Aggregation: engine.AggSum}},
		Dimensions: []engine.Dimension{{Field: "region"}},
		ChartType:  engine.ChartBar,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 0, 0, 0}, resp.Data.Datasets[0].Data)

	_, err = json.Marshal(resp)
	assert.NoError(t, err)
}

func TestParseCSV_EmptyInput(t *testing.T) {
	_, err := ParseCSV(CSVSource{Name: "empty"})
	assert.Error(t, err)
}

func TestCSVAdapter_AggregatesThroughEngine(t *testing.T) {
	a, err := NewCSVAdapter(CSVSource{
		Name:    "tickets",
		Data:    ticketsCSV,
		Metrics: []string{"story_points", "hours_spent"},
	})
	require.NoError(t, err)

	data, err := engine.New(a).Execute(engine.ChartIntent{
		Dataset:    "tickets",
		Metrics:    []engine.Metric{{Field: "story_points", Aggregation: engine.AggSum}},
		Dimensions: []engine.Dimension{{Field: "team"}},
		ChartType:  engine.ChartBar,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Platform", "Web", "Unknown"}, data.Labels)
	assert.Equal(t, []float64{8, 0, 8}, data.Datasets[0].Data)
}

func TestLoadCSVFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tickets.csv")
	require.NoError(t, os.WriteFile(path, ticketsCSV, 0o644))

	a, err := LoadCSVFiles(map[string]string{"": path})
	require.NoError(t, err)
	assert.Equal(t, []string{"tickets"}, a.ListDatasets())

	_, err = LoadCSVFiles(map[string]string{"missing": filepath.Join(dir, "nope.csv")})
	assert.Error(t, err)
}
