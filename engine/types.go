package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ============================================================================
// PROMPTCHART ENGINE TYPES
// ============================================================================
// Records are flat maps of tagged scalars. Every accessor returns a Value and
// numeric code narrows on KindNumber explicitly; nothing is coerced.
//
// ChartIntent is the contract between the intent generator and the engine.
// ChartData / ChartSpec / ChartResponse are Chart.js-shaped output.
// ============================================================================

// ============================================================================
// VALUE — Tagged scalar variant
// ============================================================================

// Kind identifies which member of the Value variant is set.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Value is a scalar field value: null, string, number or bool.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Null returns the null Value.
func Null() Value { return Value{} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// ValueOf converts a decoded JSON scalar (or a Go numeric) into a Value.
// Anything that is not a scalar becomes null.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int8:
		return Number(float64(t))
	case int16:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint:
		return Number(float64(t))
	case uint8:
		return Number(float64(t))
	case uint16:
		return Number(float64(t))
	case uint32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return Number(f)
		}
		return String(t.String())
	default:
		return Null()
	}
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Float returns the numeric payload; ok is false for non-numeric values.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Str returns the string payload; ok is false for non-string values.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Equal is structural equality: same kind and same payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	default:
		return true
	}
}

// Text renders the value the way group keys are rendered.
// Null renders as the empty string.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Interface returns the plain Go value (nil, string, float64 or bool).
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}

func (v Value) String() string {
	if v.kind == KindString {
		return strconv.Quote(v.str)
	}
	if v.kind == KindNull {
		return "null"
	}
	return v.Text()
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.(type) {
	case nil, string, bool, float64:
		*v = ValueOf(raw)
		return nil
	default:
		return fmt.Errorf("value must be a scalar, got %s", string(data))
	}
}

// ============================================================================
// RECORD
// ============================================================================

// Record is a single flat data row. Records are shared across requests and
// must never be mutated.
type Record map[string]Value

// Get returns the field's value; a missing field is null.
func (r Record) Get(field string) Value {
	return r[field]
}

// Has reports whether the field is present, even if null.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// NewRecord builds a Record from plain Go values.
func NewRecord(fields map[string]any) Record {
	r := make(Record, len(fields))
	for k, v := range fields {
		r[k] = ValueOf(v)
	}
	return r
}

// ============================================================================
// CHART INTENT — Contract between intent generator and engine
// ============================================================================

// Aggregation names a reduction over numeric values.
type Aggregation string

const (
	AggSum   Aggregation = "sum"
	AggAvg   Aggregation = "avg"
	AggMin   Aggregation = "min"
	AggMax   Aggregation = "max"
	AggCount Aggregation = "count"
)

// Operator names a filter predicate.
type Operator string

const (
	OpEq      Operator = "eq"
	OpNeq     Operator = "neq"
	OpGt      Operator = "gt"
	OpGte     Operator = "gte"
	OpLt      Operator = "lt"
	OpLte     Operator = "lte"
	OpIn      Operator = "in"
	OpBetween Operator = "between"
)

// Granularity is the time-bucketing resolution of a dimension.
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// ChartType values understood by the response assembler.
const (
	ChartBar      = "bar"
	ChartLine     = "line"
	ChartPie      = "pie"
	ChartDoughnut = "doughnut"
	ChartArea     = "area"
	ChartScatter  = "scatter"
)

// ChartTypes lists every chart type offered to the intent generator.
var ChartTypes = []string{ChartBar, ChartLine, ChartPie, ChartDoughnut, ChartArea, ChartScatter}

// Metric defines what to measure.
type Metric struct {
	Field       string      `json:"field"`
	Aggregation Aggregation `json:"aggregation"`
	Label       string      `json:"label,omitempty"`
}

// DisplayLabel is the explicit label or "{aggregation}({field})".
func (m Metric) DisplayLabel() string {
	if m.Label != "" {
		return m.Label
	}
	return fmt.Sprintf("%s(%s)", m.Aggregation, m.Field)
}

// Dimension defines how to group data.
type Dimension struct {
	Field       string      `json:"field"`
	Granularity Granularity `json:"granularity,omitempty"`
}

// Filter is a single predicate. Value is a decoded JSON scalar or list.
type Filter struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value"`
}

// ChartIntent is what the intent generator produces.
type ChartIntent struct {
	Dataset    string      `json:"dataset"`
	Metrics    []Metric    `json:"metrics"`
	Dimensions []Dimension `json:"dimensions,omitempty"`
	Filters    []Filter    `json:"filters,omitempty"`
	ChartType  string      `json:"chartType"`
	Title      string      `json:"title,omitempty"`
	SortBy     string      `json:"sortBy,omitempty"`    // "value", "label", "date"
	SortOrder  string      `json:"sortOrder,omitempty"` // "asc", "desc" (default desc)
	Limit      int         `json:"limit,omitempty"`     // 0 = all
}

// PrimaryDimension returns the first dimension, the only one honored.
func (i ChartIntent) PrimaryDimension() (Dimension, bool) {
	if len(i.Dimensions) == 0 {
		return Dimension{}, false
	}
	return i.Dimensions[0], true
}

// IsCircular reports whether the chart draws one slice per label.
func (i ChartIntent) IsCircular() bool {
	return i.ChartType == ChartPie || i.ChartType == ChartDoughnut
}

// ============================================================================
// CHART DATA — Chart.js compatible output
// ============================================================================

// Color is either one solid color or one color per label.
type Color struct {
	Solid    string
	PerLabel []string
}

// SolidColor returns a single-color Color.
func SolidColor(c string) Color { return Color{Solid: c} }

// LabelColors returns a per-label Color.
func LabelColors(cs []string) Color { return Color{PerLabel: cs} }

// IsPerLabel reports whether the color varies by label.
func (c Color) IsPerLabel() bool { return c.PerLabel != nil }

func (c Color) MarshalJSON() ([]byte, error) {
	if c.PerLabel != nil {
		return json.Marshal(c.PerLabel)
	}
	return json.Marshal(c.Solid)
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*c = Color{PerLabel: list}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("color must be a string or list of strings: %w", err)
	}
	*c = Color{Solid: s}
	return nil
}

// ChartDataset is one series.
type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor Color     `json:"backgroundColor"`
	BorderColor     Color     `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
}

// ChartData is the label sequence plus one or more aligned series.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// ============================================================================
// CHART SPEC + RESPONSE
// ============================================================================

// Axis describes one chart axis.
type Axis struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Legend controls legend rendering.
type Legend struct {
	Display  bool   `json:"display"`
	Position string `json:"position"`
}

// ChartSpec holds presentation hints. It never affects numeric values.
type ChartSpec struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	XAxis  *Axis  `json:"xAxis,omitempty"`
	YAxis  *Axis  `json:"yAxis,omitempty"`
	Legend Legend `json:"legend"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	GeneratedAt string       `json:"generatedAt"`
	Dataset     string       `json:"dataset"`
	RecordCount int          `json:"recordCount"`
	RequestID   string       `json:"requestId,omitempty"`
	Intent      *ChartIntent `json:"intent,omitempty"`
	Warnings    []string     `json:"warnings,omitempty"`
}

// ChartResponse is the final response envelope.
type ChartResponse struct {
	ChartSpec ChartSpec `json:"chartSpec"`
	Data      ChartData `json:"data"`
	Metadata  Metadata  `json:"metadata"`
}
