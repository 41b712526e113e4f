package catalog

import (
	"github.com/spektr-org/promptchart/engine"
)

// ============================================================================
// MOCK ADAPTER — Fixture datasets
// ============================================================================
// sales, users, products, orders, inventory. Literal records and metadata;
// the reference data for the HTTP demo and the test suite.
// ============================================================================

// MockAdapter serves the fixture datasets.
type MockAdapter struct {
	registry *Registry
}

// NewMockAdapter returns an adapter over the fixture datasets.
func NewMockAdapter() *MockAdapter {
	r := NewRegistry()
	for _, ds := range fixtures() {
		r.MustRegister(ds)
	}
	return &MockAdapter{registry: r}
}

func (m *MockAdapter) ListDatasets() []string            { return m.registry.ListDatasets() }
func (m *MockAdapter) MetricsOf(name string) []string    { return m.registry.MetricsOf(name) }
func (m *MockAdapter) DimensionsOf(name string) []string { return m.registry.DimensionsOf(name) }

func (m *MockAdapter) RecordsOf(name string) ([]engine.Record, error) {
	return m.registry.RecordsOf(name)
}

func rows(items ...map[string]any) []engine.Record {
	out := make([]engine.Record, len(items))
	for i, item := range items {
		out[i] = engine.NewRecord(item)
	}
	return out
}

func fixtures() []Dataset {
	return []Dataset{
		{
			Name:       "sales",
			Metrics:    []string{"amount", "quantity", "revenue"},
			Dimensions: []string{"month", "quarter", "year", "region", "category"},
			Records: rows(
				map[string]any{"month": "Jan", "quarter": "Q1", "year": 2024, "region": "North", "category": "Electronics", "amount": 45000.0, "quantity": 120.0, "revenue": 45000.0},
				map[string]any{"month": "Jan", "quarter": "Q1", "year": 2024, "region": "South", "category": "Electronics", "amount": 38000.0, "quantity": 95.0, "revenue": 38000.0},
				map[string]any{"month": "Feb", "quarter": "Q1", "year": 2024, "region": "North", "category": "Electronics", "amount": 52000.0, "quantity": 140.0, "revenue": 52000.0},
				map[string]any{"month": "Feb", "quarter": "Q1", "year": 2024, "region": "South", "category": "Electronics", "amount": 41000.0, "quantity": 105.0, "revenue": 41000.0},
				map[string]any{"month": "Mar", "quarter": "Q1", "year": 2024, "region": "North", "category": "Electronics", "amount": 48000.0, "quantity": 130.0, "revenue": 48000.0},
				map[string]any{"month": "Mar", "quarter": "Q1", "year": 2024, "region": "South", "category": "Electronics", "amount": 44000.0, "quantity": 115.0, "revenue": 44000.0},
			),
		},
		{
			Name:       "users",
			Metrics:    []string{"signups", "activeUsers", "sessions"},
			Dimensions: []string{"month", "year", "channel"},
			Records: rows(
				map[string]any{"month": "Jan", "year": 2024, "channel": "Organic", "signups": 1200.0, "activeUsers": 8500.0, "sessions": 45000.0},
				map[string]any{"month": "Jan", "year": 2024, "channel": "Paid", "signups": 800.0, "activeUsers": 3200.0, "sessions": 18000.0},
				map[string]any{"month": "Feb", "year": 2024, "channel": "Organic", "signups": 1350.0, "activeUsers": 9200.0, "sessions": 51000.0},
				map[string]any{"month": "Feb", "year": 2024, "channel": "Paid", "signups": 950.0, "activeUsers": 3800.0, "sessions": 21000.0},
			),
		},
		{
			Name:       "products",
			Metrics:    []string{"price", "quantity", "revenue", "cost", "profit"},
			Dimensions: []string{"product", "category"},
			Records: rows(
				map[string]any{"product": "Laptop Pro", "category": "Electronics", "price": 1299.0, "quantity": 450.0, "revenue": 584550.0, "cost": 400000.0, "profit": 184550.0},
				map[string]any{"product": "Wireless Mouse", "category": "Electronics", "price": 49.0, "quantity": 2200.0, "revenue": 107800.0, "cost": 44000.0, "profit": 63800.0},
				map[string]any{"product": "USB-C Hub", "category": "Electronics", "price": 79.0, "quantity": 1800.0, "revenue": 142200.0, "cost": 54000.0, "profit": 88200.0},
				map[string]any{"product": "Headphones", "category": "Electronics", "price": 199.0, "quantity": 1100.0, "revenue": 218900.0, "cost": 88000.0, "profit": 130900.0},
			),
		},
		{
			Name:       "orders",
			Metrics:    []string{"count", "amount"},
			Dimensions: []string{"month", "status", "region"},
			Records: rows(
				map[string]any{"month": "Jan", "status": "completed", "region": "North", "count": 1250.0, "amount": 125000.0},
				map[string]any{"month": "Jan", "status": "pending", "region": "North", "count": 85.0, "amount": 8500.0},
				map[string]any{"month": "Feb", "status": "completed", "region": "North", "count": 1380.0, "amount": 138000.0},
				map[string]any{"month": "Mar", "status": "completed", "region": "North", "count": 1520.0, "amount": 152000.0},
			),
		},
		{
			Name:       "inventory",
			Metrics:    []string{"quantity"},
			Dimensions: []string{"product", "category", "status"},
			Records: rows(
				map[string]any{"product": "Laptop Pro", "category": "Electronics", "quantity": 125.0, "status": "in_stock"},
				map[string]any{"product": "Wireless Mouse", "category": "Electronics", "quantity": 580.0, "status": "in_stock"},
				map[string]any{"product": "USB-C Hub", "category": "Electronics", "quantity": 45.0, "status": "low_stock"},
				map[string]any{"product": "Headphones", "category": "Electronics", "quantity": 0.0, "status": "out_of_stock"},
			),
		},
	}
}
