package engine

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ============================================================================
// EXECUTOR — Intent → ChartData
// ============================================================================
// Pipeline:
//   1. Fetch dataset records (UnknownDatasetError is the only failure)
//   2. Apply filters (AND, fail-open)
//   3. Ungrouped: one "Value" series, one label per metric
//      Grouped:   bucket by first dimension, one series per metric
//   4. Assign colors from the injected palette
//   5. Optional sort + limit
//
// One synchronous single-pass scan per request. No I/O, no shared mutable
// state; an Engine is safe for concurrent use.
// ============================================================================

// Engine executes chart intents against a DataAdapter.
type Engine struct {
	adapter DataAdapter
	cfg     *config
}

// New creates an Engine reading from adapter.
func New(adapter DataAdapter, opts ...Option) *Engine {
	return &Engine{adapter: adapter, cfg: applyOptions(opts)}
}

// Adapter returns the engine's data source.
func (e *Engine) Adapter() DataAdapter { return e.adapter }

// Palette returns the palette used for color assignment.
func (e *Engine) Palette() Palette { return e.cfg.Palette }

// Execute runs a normalized intent and returns chart-ready series.
func (e *Engine) Execute(intent ChartIntent) (ChartData, error) {
	data, _, err := e.execute(intent)
	return data, err
}

// Respond runs a normalized intent and wraps the result in a response
// envelope. Filter diagnostics are logged and listed as warnings.
func (e *Engine) Respond(intent ChartIntent, requestID string) (ChartResponse, error) {
	data, diags, err := e.execute(intent)
	if err != nil {
		return ChartResponse{}, err
	}

	var warnings []string
	for _, d := range diags {
		warnings = append(warnings, d.String())
	}

	return BuildResponse(intent, data, ResponseOptions{
		RequestID: requestID,
		Warnings:  warnings,
		Now:       e.cfg.Now(),
	}), nil
}

func (e *Engine) execute(intent ChartIntent) (ChartData, []Diagnostic, error) {
	records, err := e.adapter.RecordsOf(intent.Dataset)
	if err != nil {
		return ChartData{}, nil, fmt.Errorf("execute intent: %w", err)
	}

	logger := e.cfg.Logger.WithField("dataset", intent.Dataset)
	logger.Debugf("🔧 PromptChart: Processing %d records, chartType=%s, metrics=%d, filters=%d",
		len(records), intent.ChartType, len(intent.Metrics), len(intent.Filters))

	filtered, diags := applyFilters(records, intent.Filters)
	for _, d := range diags {
		logger.WithFields(log.Fields{
			"field":    d.Filter.Field,
			"operator": d.Filter.Operator,
			"code":     d.Code,
		}).Warn(d.Message)
	}
	logger.Debugf("🔧 PromptChart: %d records after filtering (from %d)", len(filtered), len(records))

	var data ChartData
	if dim, ok := intent.PrimaryDimension(); ok {
		data = e.grouped(filtered, dim, intent)
	} else {
		data = e.ungrouped(filtered, intent)
	}

	if intent.SortBy != "" {
		SortChartData(&data, intent.SortBy, intent.SortOrder)
	}
	LimitChartData(&data, intent.Limit)

	return data, diags, nil
}

// ungrouped aggregates every metric over the whole filtered set into a
// single "Value" series with one label per metric.
func (e *Engine) ungrouped(records []Record, intent ChartIntent) ChartData {
	labels := make([]string, len(intent.Metrics))
	values := make([]float64, len(intent.Metrics))
	for i, m := range intent.Metrics {
		labels[i] = m.DisplayLabel()
		values[i] = Aggregate(records, m.Field, m.Aggregation)
	}

	p := e.cfg.Palette
	return ChartData{
		Labels: labels,
		Datasets: []ChartDataset{{
			Label:           "Value",
			Data:            values,
			BackgroundColor: LabelColors(p.Fills(len(values))),
			BorderColor:     LabelColors(p.Strokes(len(values))),
			BorderWidth:     1,
		}},
	}
}

// grouped buckets records by the first dimension and produces one series
// per metric aligned with the bucket labels.
func (e *Engine) grouped(records []Record, dim Dimension, intent ChartIntent) ChartData {
	groups := groupByField(records, dim.Field)
	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Key
	}

	p := e.cfg.Palette
	circular := intent.IsCircular()
	datasets := make([]ChartDataset, len(intent.Metrics))
	for i, m := range intent.Metrics {
		values := make([]float64, len(groups))
		for j, g := range groups {
			values[j] = Aggregate(g.Records, m.Field, m.Aggregation)
		}

		ds := ChartDataset{
			Label:       m.DisplayLabel(),
			Data:        values,
			BorderWidth: 1,
		}
		if circular {
			ds.BackgroundColor = LabelColors(p.Fills(len(labels)))
			ds.BorderColor = LabelColors(p.Strokes(len(labels)))
		} else {
			ds.BackgroundColor = SolidColor(p.Fill(i))
			ds.BorderColor = SolidColor(p.Stroke(i))
		}
		datasets[i] = ds
	}

	return ChartData{Labels: labels, Datasets: datasets}
}
