package engine

import (
	"fmt"
)

// ============================================================================
// FILTERS — Predicate evaluation over Records
// ============================================================================
// Fail-open: a malformed filter never aborts a request. Match always returns
// a definite boolean plus an optional Diagnostic describing the fallback.
//
//   unknown operator          → match   (true)
//   non-numeric comparison    → exclude (false)
//   "in" with non-list value  → exclude (false)
//   eq with list/object value → exclude (false); neq → match (true)
// ============================================================================

// Match evaluates a single filter against a record.
func Match(record Record, f Filter) (bool, *Diagnostic) {
	value := record.Get(f.Field)

	switch f.Operator {
	case OpEq, OpNeq:
		if !isScalar(f.Value) {
			return f.Operator == OpNeq, diagnose(f, DiagNotAScalar, "operator %s requires a scalar value, got %T", f.Operator, f.Value)
		}
		eq := value.Equal(ValueOf(f.Value))
		return eq == (f.Operator == OpEq), nil
	case OpGt, OpGte, OpLt, OpLte:
		return compareNumeric(value, f)
	case OpIn:
		list, ok := asList(f.Value)
		if !ok {
			return false, diagnose(f, DiagNotAList, "operator in requires a list value, got %T", f.Value)
		}
		for _, item := range list {
			if value.Equal(ValueOf(item)) {
				return true, nil
			}
		}
		return false, nil
	case OpBetween:
		return matchBetween(value, f)
	default:
		return true, diagnose(f, DiagUnknownOperator, "unsupported operator %q on field %q ignored", f.Operator, f.Field)
	}
}

// ApplyFilters returns the records matching ALL filters, in input order.
// An empty filter list returns the input unchanged.
func ApplyFilters(records []Record, filters []Filter) []Record {
	out, _ := applyFilters(records, filters)
	return out
}

// applyFilters is ApplyFilters plus the distinct diagnostics raised.
func applyFilters(records []Record, filters []Filter) ([]Record, []Diagnostic) {
	if len(filters) == 0 {
		return records, nil
	}

	var diags []Diagnostic
	seen := make(map[string]bool)
	note := func(d *Diagnostic) {
		if d == nil {
			return
		}
		key := fmt.Sprintf("%s|%s|%s", d.Filter.Field, d.Filter.Operator, d.Code)
		if !seen[key] {
			seen[key] = true
			diags = append(diags, *d)
		}
	}

	result := make([]Record, 0, len(records))
	for _, record := range records {
		pass := true
		for _, f := range filters {
			ok, d := Match(record, f)
			note(d)
			if !ok {
				pass = false
				break
			}
		}
		if pass {
			result = append(result, record)
		}
	}
	return result, diags
}

func compareNumeric(value Value, f Filter) (bool, *Diagnostic) {
	left, ok := value.Float()
	if !ok {
		return false, diagnose(f, DiagNonNumeric, "field %q is %s, not a number", f.Field, value.Kind())
	}
	right, ok := ValueOf(f.Value).Float()
	if !ok {
		return false, diagnose(f, DiagNonNumeric, "operator %s requires a numeric value, got %T", f.Operator, f.Value)
	}

	switch f.Operator {
	case OpGt:
		return left > right, nil
	case OpGte:
		return left >= right, nil
	case OpLt:
		return left < right, nil
	default:
		return left <= right, nil
	}
}

func matchBetween(value Value, f Filter) (bool, *Diagnostic) {
	bounds, ok := asList(f.Value)
	if !ok || len(bounds) != 2 {
		return false, diagnose(f, DiagBadRange, "operator between requires [low, high], got %v", f.Value)
	}
	low, okLow := ValueOf(bounds[0]).Float()
	high, okHigh := ValueOf(bounds[1]).Float()
	if !okLow || !okHigh {
		return false, diagnose(f, DiagBadRange, "operator between requires numeric bounds, got %v", f.Value)
	}
	v, ok := value.Float()
	if !ok {
		return false, diagnose(f, DiagNonNumeric, "field %q is %s, not a number", f.Field, value.Kind())
	}
	return v >= low && v <= high, nil
}

// asList accepts decoded JSON arrays and common Go slice types.
// isScalar reports whether v is a JSON scalar. Lists and objects never
// equal a record value.
func isScalar(v any) bool {
	if _, ok := asList(v); ok {
		return false
	}
	switch v.(type) {
	case map[string]any, map[string]string:
		return false
	}
	return true
}

func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	case []float64:
		out := make([]any, len(t))
		for i, n := range t {
			out[i] = n
		}
		return out, true
	case []int:
		out := make([]any, len(t))
		for i, n := range t {
			out[i] = n
		}
		return out, true
	case []Value:
		out := make([]any, len(t))
		for i, n := range t {
			out[i] = n
		}
		return out, true
	default:
		return nil, false
	}
}

func diagnose(f Filter, code, format string, args ...any) *Diagnostic {
	return &Diagnostic{Filter: f, Code: code, Message: fmt.Sprintf(format, args...)}
}
