package engine

// ============================================================================
// DATA ADAPTER — Read-only access to named datasets
// ============================================================================
// The engine never owns consumer data. It reads through this interface.
//
// Implementations (package catalog):
//   MockAdapter: fixed fixture datasets
//   CSVAdapter:  datasets parsed once from CSV
//   Catalog:     ordered composition of adapters
//
// Adapters are populated once at startup and are safe for unlimited
// concurrent readers afterwards.
// ============================================================================

// DataAdapter provides dataset metadata and records.
type DataAdapter interface {
	// ListDatasets returns dataset names in registration order.
	ListDatasets() []string
	// MetricsOf returns the metric fields of a dataset, empty if unknown.
	MetricsOf(dataset string) []string
	// DimensionsOf returns the dimension fields of a dataset, empty if unknown.
	DimensionsOf(dataset string) []string
	// RecordsOf returns the dataset's records or *UnknownDatasetError.
	RecordsOf(dataset string) ([]Record, error)
}
