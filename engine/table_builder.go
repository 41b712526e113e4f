package engine

import (
	"math"
	"strconv"
	"strings"
)

// ============================================================================
// TABLE BUILDER — Tabular view of ChartData for exports and terminals
// ============================================================================
// One row per label, one numeric column per dataset. A "Total" summary is
// attached only when every metric is additive (sum or count); totals of
// averages or extremes mean nothing.
// ============================================================================

// Table is a rectangular rendering of chart data.
type Table struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    []TableRow `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// TableRow is one label and its value in every dataset.
type TableRow struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Summary provides totals for a table.
type Summary struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// BuildTable lays out executed chart data as a table.
func BuildTable(intent ChartIntent, data ChartData) Table {
	spec := BuildSpec(intent)

	labelColumn := "Metric"
	if spec.XAxis != nil {
		labelColumn = LabelForField(spec.XAxis.Label)
	}
	columns := make([]Column, 0, len(data.Datasets)+1)
	columns = append(columns, Column{Key: "label", Label: labelColumn, Type: "text", Align: "left"})
	for i, ds := range data.Datasets {
		columns = append(columns, Column{
			Key:   "series_" + strconv.Itoa(i),
			Label: ds.Label,
			Type:  "number",
			Align: "right",
		})
	}

	rows := make([]TableRow, len(data.Labels))
	for i, label := range data.Labels {
		values := make([]float64, len(data.Datasets))
		for j, ds := range data.Datasets {
			if i < len(ds.Data) {
				values[j] = ds.Data[i]
			}
		}
		rows[i] = TableRow{Label: label, Values: values}
	}

	table := Table{Title: spec.Title, Columns: columns, Rows: rows}
	if len(rows) > 1 && additive(intent) {
		totals := make([]float64, len(data.Datasets))
		for _, row := range rows {
			for j, v := range row.Values {
				totals[j] += v
			}
		}
		table.Summary = &Summary{Label: "Total", Values: totals}
	}
	return table
}

// additive reports whether every series can be meaningfully totalled.
// Ungrouped charts mix metrics in one series, so they never are.
func additive(intent ChartIntent) bool {
	if _, ok := intent.PrimaryDimension(); !ok {
		return false
	}
	for _, m := range intent.Metrics {
		if m.Aggregation != AggSum && m.Aggregation != AggCount {
			return false
		}
	}
	return true
}

// Header returns the column labels.
func (t Table) Header() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Label
	}
	return out
}

// Records renders every row (and the summary, if any) as strings with
// plain decimal numbers.
func (t Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	for _, row := range t.Rows {
		out = append(out, rowStrings(row.Label, row.Values, FormatPlain))
	}
	if t.Summary != nil {
		out = append(out, rowStrings(t.Summary.Label, t.Summary.Values, FormatPlain))
	}
	return out
}

func rowStrings(label string, values []float64, format func(float64) string) []string {
	row := make([]string, 0, len(values)+1)
	row = append(row, label)
	for _, v := range values {
		row = append(row, format(v))
	}
	return row
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatPlain renders v in shortest decimal form: 145000, 130, 0.25.
func FormatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatNumber renders v with comma separators and at most two decimals:
// 145000 → "145,000", 1234.5 → "1,234.50".
func FormatNumber(v float64) string {
	v = math.Round(v*100) / 100
	negative := v < 0
	if negative {
		v = -v
	}

	var intStr, decStr string
	if v == math.Trunc(v) {
		intStr = strconv.FormatFloat(v, 'f', 0, 64)
	} else {
		parts := strings.SplitN(strconv.FormatFloat(v, 'f', 2, 64), ".", 2)
		intStr, decStr = parts[0], parts[1]
	}

	if len(intStr) > 3 {
		var groups []string
		for len(intStr) > 3 {
			groups = append([]string{intStr[len(intStr)-3:]}, groups...)
			intStr = intStr[:len(intStr)-3]
		}
		groups = append([]string{intStr}, groups...)
		intStr = strings.Join(groups, ",")
	}

	result := intStr
	if decStr != "" {
		result += "." + decStr
	}
	if negative {
		result = "-" + result
	}
	return result
}

// LabelForField returns a capitalized label for a field name.
func LabelForField(field string) string {
	if len(field) == 0 {
		return ""
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
