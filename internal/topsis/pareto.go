package topsis

import "gonum.org/v1/gonum/mat"

// Dominated reports, for every row of the raw decision values, whether some
// other row dominates it: at least as good on every criterion (higher for
// Benefit, lower for Cost) and strictly better on at least one.
// O(m²·n) dominance check, fine for upload-sized tables.
func Dominated(values *mat.Dense, impacts ImpactVector) []bool {
	rows, _ := values.Dims()
	out := make([]bool, rows)
	for i := 0; i < rows; i++ {
		for k := 0; k < rows; k++ {
			if i == k {
				continue
			}
			if dominates(values.RawRowView(k), values.RawRowView(i), impacts) {
				out[i] = true
				break
			}
		}
	}
	return out
}

// dominates returns true if a dominates b.
func dominates(a, b []float64, impacts ImpactVector) bool {
	strictly := false
	for j := range a {
		x, y := a[j], b[j]
		if impacts[j] == Cost {
			x, y = -x, -y
		}
		if x < y {
			return false
		}
		if x > y {
			strictly = true
		}
	}
	return strictly
}
