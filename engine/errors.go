package engine

import (
	"fmt"
)

// UnknownDatasetError reports an intent naming a dataset the catalog does
// not have. It is the only error that fails a request.
type UnknownDatasetError struct {
	Name string
}

func (e *UnknownDatasetError) Error() string {
	return fmt.Sprintf("unknown dataset: %s", e.Name)
}

// Diagnostic codes for fail-open filter evaluation.
const (
	DiagUnknownOperator = "UNKNOWN_OPERATOR"
	DiagNonNumeric      = "NON_NUMERIC_COMPARISON"
	DiagNotAList        = "FILTER_VALUE_NOT_LIST"
	DiagBadRange        = "FILTER_VALUE_BAD_RANGE"
	DiagNotAScalar      = "FILTER_VALUE_NOT_SCALAR"
)

// Diagnostic describes a malformed filter that was resolved to a default
// instead of failing the request.
type Diagnostic struct {
	Filter  Filter `json:"filter"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}
