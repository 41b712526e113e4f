package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/spektr-org/promptchart/catalog"
	"github.com/spektr-org/promptchart/config"
	"github.com/spektr-org/promptchart/engine"
	"github.com/spektr-org/promptchart/resolver"
)

// ============================================================================
// BOOTSTRAP — config → catalog → engine → resolver
// ============================================================================

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.SetupLogging(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func buildResolver(cfg config.Config) (*resolver.Resolver, error) {
	adapters := []engine.DataAdapter{catalog.NewMockAdapter()}
	if len(cfg.CSVDatasets) > 0 {
		csvAdapter, err := catalog.LoadCSVFiles(cfg.CSVDatasets)
		if err != nil {
			return nil, fmt.Errorf("load CSV datasets: %w", err)
		}
		adapters = append(adapters, csvAdapter)
	}
	cat := catalog.New(adapters...)
	log.Printf("📊 PromptChart catalog: %d datasets", len(cat.ListDatasets()))

	gen, err := cfg.Generator()
	if err != nil {
		return nil, err
	}

	eng := engine.New(cat, engine.WithLogger(log.StandardLogger()))
	return resolver.New(gen, eng, resolver.WithTimeout(cfg.RequestTimeout)), nil
}
