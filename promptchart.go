// Package promptchart turns natural language into Chart.js-ready charts.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/promptchart/catalog"
//	    "github.com/spektr-org/promptchart/engine"
//	    "github.com/spektr-org/promptchart/resolver"
//	    "github.com/spektr-org/promptchart/translator"
//	)
//
//	gen := translator.NewOpenAI(translator.DefaultOpenAIConfig(apiKey))
//	eng := engine.New(catalog.NewMockAdapter())
//	resp, err := resolver.New(gen, eng).Resolve(ctx, resolver.Request{
//	    Prompt: "revenue by region as a pie",
//	})
//
// Datasets come from catalog adapters: the built-in fixtures, CSV files
// (catalog.CSVAdapter, CSV_DATASETS) or typed structs bound through
// catalog.DomainAdapter and registered in a catalog.Registry:
//
//	orders := catalog.NewDomainAdapter[Order]().
//	    Dimension("region", func(o Order) any { return o.Region }).
//	    Measure("amount", func(o Order) float64 { return o.Amount })
//	registry := catalog.NewRegistry()
//	registry.MustRegister(orders.Bind("orders", rows))
//	eng := engine.New(catalog.New(catalog.NewMockAdapter(), registry))
//
// The translator package is the only code that calls an LLM. It sees
// dataset names, fields and sample values, never records. The engine
// filters, groups and aggregates locally and assembles the response.
package promptchart
