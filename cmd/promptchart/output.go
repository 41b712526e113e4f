package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spektr-org/promptchart/engine"
	"github.com/spektr-org/promptchart/export"
)

// ============================================================================
// OUTPUT — json, pretty (table + trend), csv, xlsx
// ============================================================================

type outputFormat string

const (
	outputJSON   outputFormat = "json"
	outputPretty outputFormat = "pretty"
	outputCSV    outputFormat = "csv"
	outputXLSX   outputFormat = "xlsx"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case outputJSON, outputPretty, outputCSV, outputXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be json, pretty, csv, or xlsx)", s)
	}
}

func render(w io.Writer, format outputFormat, resp engine.ChartResponse) error {
	if format == outputJSON {
		return writeJSON(w, resp, false)
	}

	var intent engine.ChartIntent
	if resp.Metadata.Intent != nil {
		intent = *resp.Metadata.Intent
	}
	table := engine.BuildTable(intent, resp.Data)

	switch format {
	case outputCSV:
		return export.WriteCSV(w, table)
	case outputXLSX:
		return export.WriteXLSX(w, table)
	default:
		return writePretty(w, table, resp)
	}
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	var out []byte
	var err error
	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// writePretty prints the title, an aligned table and one trend line per
// series whose labels are periods.
func writePretty(w io.Writer, table engine.Table, resp engine.ChartResponse) error {
	fmt.Fprintf(w, "%s\n\n", table.Title)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(table.Header(), "\t")+"\t")
	for _, row := range table.Rows {
		fmt.Fprintln(tw, prettyRow(row.Label, row.Values))
	}
	if table.Summary != nil {
		fmt.Fprintln(tw, prettyRow(table.Summary.Label, table.Summary.Values))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for i := range resp.Data.Datasets {
		trend := engine.DescribeTrend(resp.Data, i)
		if trend == nil || trend.Direction == engine.TrendInsufficient {
			continue
		}
		fmt.Fprintf(w, "\n%s (%s): %s", trend.Series, trend.Period(), trend.Display)
	}

	for _, warning := range resp.Metadata.Warnings {
		fmt.Fprintf(w, "\n⚠️  %s", warning)
	}
	_, err := fmt.Fprintln(w)
	return err
}

func prettyRow(label string, values []float64) string {
	cells := make([]string, 0, len(values)+1)
	cells = append(cells, label)
	for _, v := range values {
		cells = append(cells, engine.FormatNumber(v))
	}
	return strings.Join(cells, "\t") + "\t"
}
