package catalog

import (
	"github.com/spektr-org/promptchart/engine"
)

// ============================================================================
// DOMAIN ADAPTER — Datasets from typed structs
// ============================================================================
//
// Usage:
//
//	adapter := catalog.NewDomainAdapter[Order]().
//	    Dimension("region", func(o Order) any { return o.Region }).
//	    Measure("amount", func(o Order) float64 { return o.Amount })
//
//	registry.MustRegister(adapter.Bind("orders", orders))
//
// Accessors run once per struct at Bind time; the resulting records are
// immutable like every other dataset.
// ============================================================================

// DomainAdapter builds Datasets from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	dimOrder []string
	mesOrder []string
	dims     map[string]func(T) any
	meas     map[string]func(T) float64
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) any),
		meas: make(map[string]func(T) float64),
	}
}

// Dimension registers a dimension accessor. The accessor may return any
// scalar; nil becomes null.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) any) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a metric accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
	}
	a.meas[key] = fn
	return a
}

// Bind materializes data into a named Dataset.
func (a *DomainAdapter[T]) Bind(name string, data []T) Dataset {
	records := make([]engine.Record, len(data))
	for i, item := range data {
		rec := make(engine.Record, len(a.dims)+len(a.meas))
		for _, key := range a.dimOrder {
			rec[key] = engine.ValueOf(a.dims[key](item))
		}
		for _, key := range a.mesOrder {
			rec[key] = engine.Number(a.meas[key](item))
		}
		records[i] = rec
	}
	return Dataset{
		Name:       name,
		Metrics:    append([]string{}, a.mesOrder...),
		Dimensions: append([]string{}, a.dimOrder...),
		Records:    records,
	}
}
