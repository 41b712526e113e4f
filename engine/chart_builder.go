package engine

import (
	"fmt"
	"time"
)

// ============================================================================
// CHART BUILDER — Palette, ChartSpec and response envelope
// ============================================================================
// BuildSpec is a pure function of the normalized intent; it never looks at
// executed data. BuildResponse pairs it with ChartData and metadata.
// ============================================================================

// Palette is a pair of fill/border color lists cycled by index.
type Palette struct {
	Primary []string
	Border  []string
}

// DefaultPalette returns the fixed 8-color primary/border pair.
func DefaultPalette() Palette {
	return Palette{
		Primary: []string{
			"rgba(59, 130, 246, 0.8)",
			"rgba(16, 185, 129, 0.8)",
			"rgba(245, 158, 11, 0.8)",
			"rgba(239, 68, 68, 0.8)",
			"rgba(139, 92, 246, 0.8)",
			"rgba(236, 72, 153, 0.8)",
			"rgba(20, 184, 166, 0.8)",
			"rgba(249, 115, 22, 0.8)",
		},
		Border: []string{
			"rgba(59, 130, 246, 1)",
			"rgba(16, 185, 129, 1)",
			"rgba(245, 158, 11, 1)",
			"rgba(239, 68, 68, 1)",
			"rgba(139, 92, 246, 1)",
			"rgba(236, 72, 153, 1)",
			"rgba(20, 184, 166, 1)",
			"rgba(249, 115, 22, 1)",
		},
	}
}

// Size is the number of primary colors.
func (p Palette) Size() int { return len(p.Primary) }

// Fill returns the primary color at index mod palette size.
func (p Palette) Fill(i int) string {
	return p.Primary[i%len(p.Primary)]
}

// Stroke returns the border color at index mod border size.
// A palette without borders reuses its primary colors.
func (p Palette) Stroke(i int) string {
	if len(p.Border) == 0 {
		return p.Fill(i)
	}
	return p.Border[i%len(p.Border)]
}

// Fills returns n primary colors, one per label, cycling the palette.
func (p Palette) Fills(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = p.Fill(i)
	}
	return out
}

// Strokes returns n border colors, one per label, cycling the palette.
func (p Palette) Strokes(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = p.Stroke(i)
	}
	return out
}

// ============================================================================
// CHART SPEC
// ============================================================================

// BuildSpec derives presentation hints from a normalized intent.
func BuildSpec(intent ChartIntent) ChartSpec {
	metricLabel := ""
	if len(intent.Metrics) > 0 {
		metricLabel = intent.Metrics[0].DisplayLabel()
	}

	dimField := "value"
	dim, hasDim := intent.PrimaryDimension()
	if hasDim {
		dimField = dim.Field
	}

	title := intent.Title
	if title == "" {
		title = fmt.Sprintf("%s by %s", metricLabel, dimField)
	}

	spec := ChartSpec{
		Type:  intent.ChartType,
		Title: title,
		YAxis: &Axis{Label: metricLabel, Type: "linear"},
		Legend: Legend{
			Display:  len(intent.Metrics) > 1 || intent.IsCircular(),
			Position: "top",
		},
	}
	if hasDim {
		spec.XAxis = &Axis{Label: dimField, Type: "category"}
	}
	return spec
}

// ============================================================================
// RESPONSE ENVELOPE
// ============================================================================

// ResponseOptions carries per-request metadata into BuildResponse.
type ResponseOptions struct {
	RequestID string
	Warnings  []string
	Now       time.Time
}

// BuildResponse assembles the response envelope. recordCount is the number
// of output labels, not the number of input records.
func BuildResponse(intent ChartIntent, data ChartData, opts ResponseOptions) ChartResponse {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	echo := intent
	return ChartResponse{
		ChartSpec: BuildSpec(intent),
		Data:      data,
		Metadata: Metadata{
			GeneratedAt: now.UTC().Format(time.RFC3339),
			Dataset:     intent.Dataset,
			RecordCount: len(data.Labels),
			RequestID:   opts.RequestID,
			Intent:      &echo,
			Warnings:    opts.Warnings,
		},
	}
}
