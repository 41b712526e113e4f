// Package catalog provides the read-only dataset registry the chart engine
// queries. Datasets are registered once at startup and never mutated.
package catalog

import (
	"errors"
	"fmt"

	"github.com/spektr-org/promptchart/engine"
)

// Dataset is a named, ordered record collection plus its field metadata.
type Dataset struct {
	Name       string
	Metrics    []string
	Dimensions []string
	Records    []engine.Record
}

// ErrDuplicateDataset is returned when a name is registered twice.
var ErrDuplicateDataset = errors.New("dataset already registered")

// Registry is an insertion-ordered set of datasets. Populate it before
// sharing; reads need no locking because nothing writes afterwards.
type Registry struct {
	order    []string
	datasets map[string]Dataset
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{datasets: make(map[string]Dataset)}
}

// Register adds a dataset.
func (r *Registry) Register(ds Dataset) error {
	if ds.Name == "" {
		return errors.New("dataset name is required")
	}
	if _, exists := r.datasets[ds.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDataset, ds.Name)
	}
	r.order = append(r.order, ds.Name)
	r.datasets[ds.Name] = ds
	return nil
}

// MustRegister is Register for static fixtures; it panics on error.
func (r *Registry) MustRegister(ds Dataset) {
	if err := r.Register(ds); err != nil {
		panic(err)
	}
}

// ListDatasets returns names in registration order.
func (r *Registry) ListDatasets() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// MetricsOf returns a copy of the dataset's metric fields.
func (r *Registry) MetricsOf(name string) []string {
	ds, ok := r.datasets[name]
	if !ok {
		return []string{}
	}
	return append([]string{}, ds.Metrics...)
}

// DimensionsOf returns a copy of the dataset's dimension fields.
func (r *Registry) DimensionsOf(name string) []string {
	ds, ok := r.datasets[name]
	if !ok {
		return []string{}
	}
	return append([]string{}, ds.Dimensions...)
}

// RecordsOf returns the dataset's records. Callers must not mutate them.
func (r *Registry) RecordsOf(name string) ([]engine.Record, error) {
	ds, ok := r.datasets[name]
	if !ok {
		return nil, &engine.UnknownDatasetError{Name: name}
	}
	return ds.Records, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.datasets[name]
	return ok
}

// ============================================================================
// CATALOG — ordered composition of adapters
// ============================================================================

// Catalog merges several adapters. The first adapter that lists a dataset
// owns it; later adapters cannot shadow an earlier name.
type Catalog struct {
	adapters []engine.DataAdapter
}

// New composes adapters in priority order.
func New(adapters ...engine.DataAdapter) *Catalog {
	return &Catalog{adapters: adapters}
}

func (c *Catalog) ListDatasets() []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range c.adapters {
		for _, name := range a.ListDatasets() {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

func (c *Catalog) MetricsOf(name string) []string {
	if a := c.owner(name); a != nil {
		return a.MetricsOf(name)
	}
	return []string{}
}

func (c *Catalog) DimensionsOf(name string) []string {
	if a := c.owner(name); a != nil {
		return a.DimensionsOf(name)
	}
	return []string{}
}

func (c *Catalog) RecordsOf(name string) ([]engine.Record, error) {
	if a := c.owner(name); a != nil {
		return a.RecordsOf(name)
	}
	return nil, &engine.UnknownDatasetError{Name: name}
}

func (c *Catalog) owner(name string) engine.DataAdapter {
	for _, a := range c.adapters {
		for _, n := range a.ListDatasets() {
			if n == name {
				return a
			}
		}
	}
	return nil
}
