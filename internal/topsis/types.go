package topsis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Impact is the preference direction of a criterion.
type Impact string

const (
	Benefit Impact = "+" // higher is better
	Cost    Impact = "-" // lower is better
)

// RankMethod selects how tied scores are ranked.
type RankMethod string

const (
	// RankCompetition gives tied rows the same rank and leaves a gap after
	// them (1, 2, 2, 4).
	RankCompetition RankMethod = "competition"
	// RankDense gives tied rows the same rank without gaps (1, 2, 2, 3).
	RankDense RankMethod = "dense"
)

// WeightVector holds one importance weight per criterion column. Only the
// relative magnitudes matter.
type WeightVector []float64

// ImpactVector holds one preference direction per criterion column.
type ImpactVector []Impact

// DecisionMatrix is the validated input table: one label and n criterion
// values per row.
type DecisionMatrix struct {
	// Header is the label column name followed by the n criterion names.
	Header []string
	Labels []string
	Values *mat.Dense
}

// Dims returns the number of alternatives and criteria.
func (d *DecisionMatrix) Dims() (rows, criteria int) {
	if d == nil || d.Values == nil {
		return 0, 0
	}
	return d.Values.Dims()
}

// CriterionName returns the header name of criterion column j, falling back
// to its 1-based position when the header is missing.
func (d *DecisionMatrix) CriterionName(j int) string {
	if j+1 < len(d.Header) && d.Header[j+1] != "" {
		return d.Header[j+1]
	}
	return fmt.Sprintf("criterion %d", j+1)
}

func (d *DecisionMatrix) check() error {
	rows, cols := d.Dims()
	if rows == 0 {
		return ErrNoAlternatives
	}
	if len(d.Labels) != rows {
		return &ValidationError{
			Kind:    KindRaggedRow,
			Message: fmt.Sprintf("Matrix has %d labels for %d rows.", len(d.Labels), rows),
			Details: map[string]any{"labels": len(d.Labels), "rows": rows},
		}
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := d.Values.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nonNumeric(i+1, d.CriterionName(j), fmt.Sprint(v))
			}
		}
	}
	return nil
}

// Options tune validation and ranking. The zero value reproduces the
// reference behaviour: non-positive weights allowed, competition ranking.
type Options struct {
	StrictWeights bool       `json:"strict_weights" yaml:"strict_weights"`
	RankMethod    RankMethod `json:"rank_method" yaml:"rank_method"`
}

// Configuration pairs the weights and impacts applied to a DecisionMatrix.
type Configuration struct {
	Weights WeightVector `json:"weights"`
	Impacts ImpactVector `json:"impacts"`
}

func (c Configuration) check(criteria int) error {
	if len(c.Weights) != criteria || len(c.Impacts) != criteria {
		return countMismatch(len(c.Weights), len(c.Impacts), criteria)
	}
	for j, w := range c.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return invalidWeight(j+1, fmt.Sprint(w), "not a finite number")
		}
	}
	for j, imp := range c.Impacts {
		if imp != Benefit && imp != Cost {
			return invalidImpact(j+1, string(imp))
		}
	}
	return nil
}

// ScoredRow is one alternative with its separations, closeness score and rank.
type ScoredRow struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
	SPlus  float64   `json:"s_plus"`
	SMinus float64   `json:"s_minus"`
	Score  float64   `json:"score"`
	Rank   int       `json:"rank"`
	// Dominated is set when another alternative is at least as good on every
	// criterion and strictly better on one.
	Dominated bool `json:"dominated"`
}

// RankedResult holds every input row, in input order, with its score and rank.
type RankedResult struct {
	Header     []string     `json:"header"`
	Rows       []ScoredRow  `json:"rows"`
	Weights    WeightVector `json:"weights"`
	Impacts    ImpactVector `json:"impacts"`
	// IdealBest, IdealWorst and the row separations are measured after the
	// weights are divided by the largest absolute weight.
	IdealBest  []float64    `json:"ideal_best"`
	IdealWorst []float64    `json:"ideal_worst"`
	// ZeroWeightColumns names criteria whose weight is 0 and which therefore
	// cannot influence the ranking.
	ZeroWeightColumns []string `json:"zero_weight_columns,omitempty"`
}

// Best returns the rows holding rank 1.
func (r *RankedResult) Best() []ScoredRow {
	var best []ScoredRow
	for _, row := range r.Rows {
		if row.Rank == 1 {
			best = append(best, row)
		}
	}
	return best
}

// Scores returns the closeness scores in row order.
func (r *RankedResult) Scores() []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.Score
	}
	return out
}

// Ranks returns the ranks in row order.
func (r *RankedResult) Ranks() []int {
	out := make([]int, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.Rank
	}
	return out
}
