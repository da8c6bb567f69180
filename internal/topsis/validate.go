package topsis

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// minTableColumns is the label column plus two criteria.
const minTableColumns = 3

// ParseWeights parses a comma-separated weight string such as "1,1,1,2".
// Tokens are trimmed. With strict set, zero and negative weights are rejected.
func ParseWeights(raw string, strict bool) (WeightVector, error) {
	tokens := splitTokens(raw)
	weights := make(WeightVector, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		v, err := parseDecimal(tok)
		if err != nil {
			return nil, invalidWeight(i+1, tok, "not a number")
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, invalidWeight(i+1, tok, "not a finite number")
		}
		if strict && v <= 0 {
			return nil, invalidWeight(i+1, tok, "must be positive")
		}
		weights[i] = v
	}
	return weights, nil
}

// ParseImpacts parses a comma-separated impact string such as "+,+,-,+".
// Tokens must be exactly "+" or "-"; surrounding spaces are not stripped.
func ParseImpacts(raw string) (ImpactVector, error) {
	tokens := splitTokens(raw)
	impacts := make(ImpactVector, len(tokens))
	for i, tok := range tokens {
		switch Impact(tok) {
		case Benefit, Cost:
			impacts[i] = Impact(tok)
		default:
			return nil, invalidImpact(i+1, tok)
		}
	}
	return impacts, nil
}

// splitTokens splits on commas. An empty or blank string yields no tokens,
// which later surfaces as a count mismatch.
func splitTokens(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// NewDecisionMatrix builds a DecisionMatrix from a header and data records.
// The first field of each record is the label; the rest must be finite numbers.
func NewDecisionMatrix(header []string, records [][]string) (*DecisionMatrix, error) {
	width, err := checkShape(header, records)
	if err != nil {
		return nil, err
	}

	dm := &DecisionMatrix{
		Header: normalizeHeader(header, width),
		Labels: make([]string, len(records)),
	}
	criteria := width - 1
	data := make([]float64, 0, len(records)*criteria)
	for i, rec := range records {
		dm.Labels[i] = rec[0]
		for j, cell := range rec[1:] {
			v, err := parseCell(cell)
			if err != nil {
				return nil, nonNumeric(i+1, dm.CriterionName(j), cell)
			}
			data = append(data, v)
		}
	}
	dm.Values = mat.NewDense(len(records), criteria, data)
	return dm, nil
}

// checkShape returns the table width after checking the column count, that
// at least one data row exists and that every row has the same width.
func checkShape(header []string, records [][]string) (int, error) {
	width := len(header)
	if width == 0 && len(records) > 0 {
		width = len(records[0])
	}
	if width < minTableColumns {
		return 0, tooFewColumns(width)
	}
	if len(records) == 0 {
		return 0, ErrNoAlternatives
	}
	for i, rec := range records {
		if len(rec) != width {
			return 0, raggedRow(i+1, len(rec), width)
		}
	}
	return width, nil
}

func normalizeHeader(header []string, width int) []string {
	out := make([]string, width)
	copy(out, header)
	return out
}

func parseCell(cell string) (float64, error) {
	v, err := parseDecimal(strings.TrimSpace(cell))
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

// parseDecimal is strconv.ParseFloat without Go's hexadecimal float syntax.
func parseDecimal(tok string) (float64, error) {
	digits := strings.TrimLeft(tok, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(tok, 64)
}

// Validate turns raw tabular input and raw weight/impact strings into a
// DecisionMatrix and Configuration. The first failure is returned:
// table shape, then weight tokens, impact tokens, cells and finally counts.
func Validate(header []string, records [][]string, weights, impacts string, opts Options) (*DecisionMatrix, Configuration, error) {
	width, err := checkShape(header, records)
	if err != nil {
		return nil, Configuration{}, err
	}

	w, err := ParseWeights(weights, opts.StrictWeights)
	if err != nil {
		return nil, Configuration{}, err
	}
	imp, err := ParseImpacts(impacts)
	if err != nil {
		return nil, Configuration{}, err
	}

	dm, err := NewDecisionMatrix(header, records)
	if err != nil {
		return nil, Configuration{}, err
	}
	cfg := Configuration{Weights: w, Impacts: imp}
	if err := cfg.check(width - 1); err != nil {
		return nil, Configuration{}, err
	}
	return dm, cfg, nil
}
