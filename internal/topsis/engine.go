// Package topsis ranks alternatives with TOPSIS (Technique for Order
// Preference by Similarity to Ideal Solution).
//
// The engine is a pure function of its inputs: validate, normalise each
// criterion column to unit norm, apply weights, resolve the ideal-best and
// ideal-worst points, measure each row's separation from both and rank rows by
// closeness coefficient S- / (S+ + S-). Failures are *ValidationError values;
// nothing is logged and no partial result is returned.
package topsis

import (
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Engine runs the TOPSIS pipeline. It holds only immutable options and is
// safe for concurrent use.
type Engine struct {
	opts Options
}

// NewEngine creates an Engine. An empty RankMethod means RankCompetition.
func NewEngine(opts Options) *Engine {
	if opts.RankMethod == "" {
		opts.RankMethod = RankCompetition
	}
	return &Engine{opts: opts}
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options {
	return e.opts
}

// Run validates raw tabular input and raw weight/impact strings and ranks the
// rows.
func (e *Engine) Run(header []string, records [][]string, weights, impacts string) (*RankedResult, error) {
	dm, cfg, err := Validate(header, records, weights, impacts, e.opts)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(dm, cfg)
}

// Evaluate ranks an already built DecisionMatrix. Count and finiteness
// invariants are re-checked so matrices built by hand get the same errors.
func (e *Engine) Evaluate(dm *DecisionMatrix, cfg Configuration) (*RankedResult, error) {
	if err := dm.check(); err != nil {
		return nil, err
	}
	_, criteria := dm.Dims()
	if err := cfg.check(criteria); err != nil {
		return nil, err
	}
	if e.opts.StrictWeights {
		for j, w := range cfg.Weights {
			if w <= 0 {
				return nil, invalidWeight(j+1, strconv.FormatFloat(w, 'g', -1, 64), "must be positive")
			}
		}
	}

	normalized, err := Normalize(dm.Values, dm.CriterionName)
	if err != nil {
		return nil, err
	}
	weighted := ApplyWeights(normalized, RelativeWeights(cfg.Weights))
	best, worst := IdealPoints(weighted, cfg.Impacts)
	sPlus, sMinus := Separations(weighted, best, worst)
	scores, err := Closeness(sPlus, sMinus, dm.Labels)
	if err != nil {
		return nil, err
	}
	ranks := Rank(scores, e.opts.RankMethod)
	dominated := Dominated(dm.Values, cfg.Impacts)

	res := &RankedResult{
		Header:     append([]string(nil), dm.Header...),
		Rows:       make([]ScoredRow, len(scores)),
		Weights:    append(WeightVector(nil), cfg.Weights...),
		Impacts:    append(ImpactVector(nil), cfg.Impacts...),
		IdealBest:  best,
		IdealWorst: worst,
	}
	for i := range scores {
		res.Rows[i] = ScoredRow{
			Label:     dm.Labels[i],
			Values:    mat.Row(nil, i, dm.Values),
			SPlus:     sPlus[i],
			SMinus:    sMinus[i],
			Score:     scores[i],
			Rank:      ranks[i],
			Dominated: dominated[i],
		}
	}
	for j, w := range cfg.Weights {
		if w == 0 {
			res.ZeroWeightColumns = append(res.ZeroWeightColumns, dm.CriterionName(j))
		}
	}
	return res, nil
}

// Evaluate ranks dm with default options.
func Evaluate(dm *DecisionMatrix, cfg Configuration) (*RankedResult, error) {
	return NewEngine(Options{}).Evaluate(dm, cfg)
}
