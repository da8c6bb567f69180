package topsis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func colName(j int) string { return []string{"x", "y"}[j] }

func TestNormalize(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{
		3, 1,
		4, 1,
	})
	out, err := Normalize(m, colName)
	require.NoError(t, err)

	assert.InDelta(t, 0.6, out.At(0, 0), 1e-12)
	assert.InDelta(t, 0.8, out.At(1, 0), 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, out.At(0, 1), 1e-12)

	// Every column has unit norm afterwards.
	for j := 0; j < 2; j++ {
		assert.InDelta(t, 1.0, mat.Norm(out.ColView(j), 2), 1e-12)
	}
	// Input untouched.
	assert.Equal(t, 3.0, m.At(0, 0))
}

func TestNormalizeZeroColumn(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{
		1, 0,
		2, 0,
	})
	_, err := Normalize(m, colName)
	require.ErrorIs(t, err, ErrDegenerateColumn)
	assert.Contains(t, err.Error(), `"y"`)
}

func TestNormalizeNegativeValues(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{
		-3, 1,
		4, 2,
	})
	out, err := Normalize(m, colName)
	require.NoError(t, err)
	assert.InDelta(t, -0.6, out.At(0, 0), 1e-12)
}

func TestApplyWeights(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	out := ApplyWeights(m, WeightVector{2, 0, -1})
	want := mat.NewDense(2, 3, []float64{
		2, 0, -3,
		8, 0, -6,
	})
	assert.True(t, mat.EqualApprox(want, out, 1e-12), "got %v", mat.Formatted(out))
}

func TestRelativeWeights(t *testing.T) {
	in := WeightVector{2, -4, 1}
	assert.Equal(t, WeightVector{0.5, -1, 0.25}, RelativeWeights(in))
	assert.Equal(t, WeightVector{2, -4, 1}, in, "input must not be modified")

	assert.Equal(t, WeightVector{1, 1}, RelativeWeights(WeightVector{1.7e308, 1.7e308}))
	assert.Equal(t, WeightVector{0, 0}, RelativeWeights(WeightVector{0, 0}))
}

func TestIdealPoints(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		0.2, 0.9,
		0.5, 0.1,
		0.5, 0.4,
	})
	best, worst := IdealPoints(m, ImpactVector{Benefit, Cost})
	assert.Equal(t, []float64{0.5, 0.1}, best)
	assert.Equal(t, []float64{0.2, 0.9}, worst)
}

func TestSeparations(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{
		0, 0,
		3, 4,
	})
	sPlus, sMinus := Separations(m, []float64{3, 4}, []float64{0, 0})
	assert.InDeltaSlice(t, []float64{5, 0}, sPlus, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 5}, sMinus, 1e-12)
}

func TestCloseness(t *testing.T) {
	scores, err := Closeness([]float64{0, 1, 3}, []float64{2, 1, 1}, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0.5, 0.25}, scores, 1e-12)

	_, err = Closeness([]float64{1, 0}, []float64{1, 0}, []string{"a", "b"})
	require.ErrorIs(t, err, ErrUndefinedScore)
	assert.Contains(t, err.Error(), `"b"`)
}

func TestClosenessNonFinite(t *testing.T) {
	inf := math.Inf(1)
	cases := []struct {
		name          string
		sPlus, sMinus []float64
	}{
		{"infinite s+", []float64{1, inf}, []float64{1, 1}},
		{"infinite s-", []float64{1, 1}, []float64{1, inf}},
		{"both infinite", []float64{1, inf}, []float64{1, inf}},
		{"nan", []float64{1, math.NaN()}, []float64{1, 1}},
		{"overflowing sum", []float64{1, math.MaxFloat64}, []float64{1, math.MaxFloat64}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scores, err := Closeness(tc.sPlus, tc.sMinus, []string{"a", "b"})
			require.ErrorIs(t, err, ErrUndefinedScore)
			assert.Nil(t, scores)
			assert.Contains(t, err.Error(), `"b"`)
		})
	}
}

func TestDominated(t *testing.T) {
	values := mat.NewDense(4, 2, []float64{
		5, 1, // best on both
		5, 1, // duplicate: equal rows do not dominate each other
		4, 2,
		6, 3,
	})
	got := Dominated(values, ImpactVector{Benefit, Cost})
	assert.Equal(t, []bool{false, false, true, false}, got)
}
