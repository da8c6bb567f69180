package topsis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// IdealPoints returns the ideal-best and ideal-worst value of every column of
// the weighted matrix. Benefit columns take their best value from the maximum
// and Cost columns from the minimum.
func IdealPoints(weighted *mat.Dense, impacts ImpactVector) (best, worst []float64) {
	rows, cols := weighted.Dims()
	best = make([]float64, cols)
	worst = make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, weighted)
		hi, lo := floats.Max(col), floats.Min(col)
		if impacts[j] == Cost {
			hi, lo = lo, hi
		}
		best[j], worst[j] = hi, lo
	}
	return best, worst
}

// Separations returns the Euclidean distance of every row from the ideal-best
// (sPlus) and ideal-worst (sMinus) points.
//
//	S+ = √(∑(v_ij - best_j)²)
//	S- = √(∑(v_ij - worst_j)²)
func Separations(weighted *mat.Dense, best, worst []float64) (sPlus, sMinus []float64) {
	rows, _ := weighted.Dims()
	sPlus = make([]float64, rows)
	sMinus = make([]float64, rows)
	for i := 0; i < rows; i++ {
		row := weighted.RawRowView(i)
		sPlus[i] = floats.Distance(row, best, 2)
		sMinus[i] = floats.Distance(row, worst, 2)
	}
	return sPlus, sMinus
}

// Closeness computes C = S- / (S+ + S-) per row. A row with S+ + S- == 0, or
// with a non-finite separation, has no defined score and fails with
// UndefinedScore.
func Closeness(sPlus, sMinus []float64, labels []string) ([]float64, error) {
	scores := make([]float64, len(sPlus))
	for i := range sPlus {
		denom := sPlus[i] + sMinus[i]
		if denom == 0 || !finite(sPlus[i]) || !finite(sMinus[i]) || !finite(denom) {
			label := ""
			if i < len(labels) {
				label = labels[i]
			}
			return nil, undefinedScore(i+1, label)
		}
		scores[i] = clamp(sMinus[i]/denom, 0, 1)
	}
	return scores, nil
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
