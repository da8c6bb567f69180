package topsis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		method RankMethod
		want   []int
	}{
		{"distinct", []float64{0.3, 0.9, 0.5}, RankCompetition, []int{3, 1, 2}},
		{"tie at top", []float64{0.8, 0.8, 0.1}, RankCompetition, []int{1, 1, 3}},
		{"tie in middle", []float64{0.9, 0.5, 0.5, 0.2}, RankCompetition, []int{1, 2, 2, 4}},
		{"all equal", []float64{0.5, 0.5, 0.5}, RankCompetition, []int{1, 1, 1}},
		{"dense tie in middle", []float64{0.9, 0.5, 0.5, 0.2}, RankDense, []int{1, 2, 2, 3}},
		{"dense distinct", []float64{0.3, 0.9, 0.5}, RankDense, []int{3, 1, 2}},
		{"empty method means competition", []float64{1, 1, 0}, "", []int{1, 1, 3}},
		{"single", []float64{0.42}, RankCompetition, []int{1}},
		{"none", nil, RankCompetition, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rank(tt.scores, tt.method))
		})
	}
}

func TestRankDoesNotReorderInput(t *testing.T) {
	scores := []float64{0.1, 0.7, 0.4}
	Rank(scores, RankCompetition)
	assert.Equal(t, []float64{0.1, 0.7, 0.4}, scores)
}
