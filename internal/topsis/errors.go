package topsis

import "fmt"

// Kind identifies the class of a ranking failure.
type Kind string

const (
	KindTooFewColumns       Kind = "too_few_columns"
	KindNonNumericCriterion Kind = "non_numeric_criterion"
	KindCountMismatch       Kind = "count_mismatch"
	KindInvalidImpactSymbol Kind = "invalid_impact_symbol"
	KindInvalidWeight       Kind = "invalid_weight"
	KindDegenerateColumn    Kind = "degenerate_column"
	KindUndefinedScore      Kind = "undefined_score"
	KindNoAlternatives      Kind = "no_alternatives"
	KindRaggedRow           Kind = "ragged_row"
)

// ValidationError is the only error type the engine returns. Details carries
// the diagnostic payload (counts, row/column positions, offending tokens).
type ValidationError struct {
	Kind    Kind           `json:"kind"`
	Message string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches any ValidationError of the same kind, so the Err* sentinels work
// with errors.Is regardless of payload.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrTooFewColumns       = &ValidationError{Kind: KindTooFewColumns, Message: "Input file must contain three or more columns."}
	ErrNonNumericCriterion = &ValidationError{Kind: KindNonNumericCriterion, Message: "From 2nd column onwards, values must be numeric."}
	ErrCountMismatch       = &ValidationError{Kind: KindCountMismatch, Message: "Weights, Impacts, and Columns count mismatch."}
	ErrInvalidImpactSymbol = &ValidationError{Kind: KindInvalidImpactSymbol, Message: "Impacts must be + or -."}
	ErrInvalidWeight       = &ValidationError{Kind: KindInvalidWeight, Message: "Weights must be numeric."}
	ErrDegenerateColumn    = &ValidationError{Kind: KindDegenerateColumn, Message: "Criterion column has zero norm."}
	ErrUndefinedScore      = &ValidationError{Kind: KindUndefinedScore, Message: "Closeness score is undefined."}
	ErrNoAlternatives      = &ValidationError{Kind: KindNoAlternatives, Message: "Input file must contain at least one data row."}
	ErrRaggedRow           = &ValidationError{Kind: KindRaggedRow, Message: "All rows must have the same number of columns."}
)

func tooFewColumns(got int) error {
	return &ValidationError{
		Kind:    KindTooFewColumns,
		Message: ErrTooFewColumns.Message,
		Details: map[string]any{"columns": got, "min_columns": minTableColumns},
	}
}

func nonNumeric(row int, column, value string) error {
	return &ValidationError{
		Kind:    KindNonNumericCriterion,
		Message: fmt.Sprintf("From 2nd column onwards, values must be numeric: row %d, column %q has value %q.", row, column, value),
		Details: map[string]any{"row": row, "column": column, "value": value},
	}
}

func countMismatch(weights, impacts, columns int) error {
	return &ValidationError{
		Kind:    KindCountMismatch,
		Message: fmt.Sprintf("Weights (%d), Impacts (%d), and Columns (%d) count mismatch.", weights, impacts, columns),
		Details: map[string]any{"weights": weights, "impacts": impacts, "columns": columns},
	}
}

func invalidImpact(position int, token string) error {
	return &ValidationError{
		Kind:    KindInvalidImpactSymbol,
		Message: fmt.Sprintf("Impacts must be + or -: got %q at position %d.", token, position),
		Details: map[string]any{"position": position, "token": token},
	}
}

func invalidWeight(position int, token, reason string) error {
	return &ValidationError{
		Kind:    KindInvalidWeight,
		Message: fmt.Sprintf("Invalid weight %q at position %d: %s.", token, position, reason),
		Details: map[string]any{"position": position, "token": token, "reason": reason},
	}
}

func degenerateColumn(index int, column string) error {
	return &ValidationError{
		Kind:    KindDegenerateColumn,
		Message: fmt.Sprintf("Criterion column %q has zero norm; every value is 0.", column),
		Details: map[string]any{"column": column, "index": index},
	}
}

func undefinedScore(row int, label string) error {
	return &ValidationError{
		Kind:    KindUndefinedScore,
		Message: fmt.Sprintf("Closeness score is undefined for row %d (%q): it coincides with both ideal points.", row, label),
		Details: map[string]any{"row": row, "label": label},
	}
}

func raggedRow(row, got, want int) error {
	return &ValidationError{
		Kind:    KindRaggedRow,
		Message: fmt.Sprintf("Row %d has %d columns, expected %d.", row, got, want),
		Details: map[string]any{"row": row, "columns": got, "expected": want},
	}
}
