package topsis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Normalize divides every criterion column by its Euclidean norm. A column
// whose norm is zero cannot be normalised and fails with DegenerateColumn;
// name reports the offending column.
func Normalize(m *mat.Dense, name func(j int) string) (*mat.Dense, error) {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		norm := floats.Norm(col, 2)
		if norm == 0 {
			return nil, degenerateColumn(j, name(j))
		}
		floats.Scale(1/norm, col)
		out.SetCol(j, col)
	}
	return out, nil
}

// ApplyWeights multiplies column j of the normalised matrix by weights[j].
func ApplyWeights(m *mat.Dense, weights WeightVector) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	out.Mul(m, mat.NewDiagDense(cols, []float64(weights)))
	return out
}

// RelativeWeights divides every weight by the largest absolute weight so the
// weighted matrix stays within [-1, 1]. Closeness is invariant under a
// positive rescaling of the weights, so scores are unchanged; huge finite
// weights no longer overflow the separations. An all-zero vector is returned
// as a copy.
func RelativeWeights(weights WeightVector) WeightVector {
	out := append(WeightVector(nil), weights...)
	var scale float64
	for _, w := range weights {
		scale = math.Max(scale, math.Abs(w))
	}
	if scale == 0 {
		return out
	}
	for j := range out {
		out[j] /= scale
	}
	return out
}
