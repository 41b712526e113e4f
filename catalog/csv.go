package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/spektr-org/promptchart/engine"
)

// ============================================================================
// CSV ADAPTER — Datasets parsed once from CSV
// ============================================================================
// Consumer reads the CSV from wherever it lives and hands over the bytes.
// Headers become snake_case field names. Metric columns hold numbers where
// the cell parses as one; dimension columns hold strings; empty cells are
// null. Without declared metrics, columns whose every non-empty cell is
// numeric become metrics and the rest dimensions.
// ============================================================================

// CSVSource describes one CSV-backed dataset.
type CSVSource struct {
	Name       string
	Data       []byte
	Metrics    []string // optional; snake_case field names
	Dimensions []string // optional; snake_case field names
}

// CSVAdapter serves datasets parsed from CSV sources.
type CSVAdapter struct {
	registry *Registry
}

// NewCSVAdapter parses every source up front. Any parse failure aborts.
func NewCSVAdapter(sources ...CSVSource) (*CSVAdapter, error) {
	r := NewRegistry()
	for _, src := range sources {
		ds, err := ParseCSV(src)
		if err != nil {
			return nil, err
		}
		if err := r.Register(ds); err != nil {
			return nil, err
		}
		log.Printf("📊 Catalog: loaded CSV dataset %q (%d records, %d metrics, %d dimensions)",
			ds.Name, len(ds.Records), len(ds.Metrics), len(ds.Dimensions))
	}
	return &CSVAdapter{registry: r}, nil
}

// LoadCSVFiles builds an adapter from name → path pairs. An empty name
// defaults to the file's base name without extension. Datasets register
// in name order.
func LoadCSVFiles(paths map[string]string) (*CSVAdapter, error) {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	sources := make([]CSVSource, 0, len(paths))
	for _, name := range names {
		path := paths[name]
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV dataset %s: %w", path, err)
		}
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		sources = append(sources, CSVSource{Name: name, Data: data})
	}
	return NewCSVAdapter(sources...)
}

func (a *CSVAdapter) ListDatasets() []string            { return a.registry.ListDatasets() }
func (a *CSVAdapter) MetricsOf(name string) []string    { return a.registry.MetricsOf(name) }
func (a *CSVAdapter) DimensionsOf(name string) []string { return a.registry.DimensionsOf(name) }

func (a *CSVAdapter) RecordsOf(name string) ([]engine.Record, error) {
	return a.registry.RecordsOf(name)
}

// ParseCSV converts one CSV source into a Dataset.
func ParseCSV(src CSVSource) (Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(src.Data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to read CSV headers for %s: %w", src.Name, err)
	}
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = toSnakeCase(strings.TrimSpace(h))
	}

	var rowsRead [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.WithError(err).WithField("dataset", src.Name).Warn("skipping malformed CSV row")
			continue
		}
		rowsRead = append(rowsRead, row)
	}

	metrics, dimensions := src.Metrics, src.Dimensions
	if len(metrics) == 0 {
		metrics, dimensions = classifyColumns(keys, rowsRead, dimensions)
	} else if len(dimensions) == 0 {
		dimensions = remaining(keys, metrics)
	}
	metricSet := toSet(metrics)

	records := make([]engine.Record, 0, len(rowsRead))
	for _, row := range rowsRead {
		rec := make(engine.Record, len(keys))
		for i, key := range keys {
			if i >= len(row) {
				break
			}
			cell := strings.TrimSpace(row[i])
			switch {
			case cell == "":
				rec[key] = engine.Null()
			case metricSet[key]:
				if f, ok := parseFinite(cell); ok {
					rec[key] = engine.Number(f)
				} else {
					rec[key] = engine.String(cell)
				}
			default:
				rec[key] = engine.String(cell)
			}
		}
		records = append(records, rec)
	}

	return Dataset{
		Name:       src.Name,
		Metrics:    metrics,
		Dimensions: dimensions,
		Records:    records,
	}, nil
}

// classifyColumns marks a column as a metric when it has at least one cell
// and every non-empty cell parses as a float.
func classifyColumns(keys []string, rows [][]string, declaredDims []string) ([]string, []string) {
	dimSet := toSet(declaredDims)
	var metrics, dims []string
	for i, key := range keys {
		if dimSet[key] {
			dims = append(dims, key)
			continue
		}
		numeric, seen := true, false
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			seen = true
			if _, ok := parseFinite(cell); !ok {
				numeric = false
				break
			}
		}
		if numeric && seen {
			metrics = append(metrics, key)
		} else {
			dims = append(dims, key)
		}
	}
	return metrics, dims
}

func remaining(keys, exclude []string) []string {
	ex := toSet(exclude)
	var out []string
	for _, k := range keys {
		if !ex[k] {
			out = append(out, k)
		}
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// parseFinite parses a float cell. NaN and Inf are not numbers here: they
// cannot be aggregated or encoded as JSON.
func parseFinite(cell string) (float64, bool) {
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
