package topsis

import "sort"

// Rank assigns rank 1 to the highest score. Equal scores always share a rank;
// method decides whether a gap follows a tie. Ranks come back in the order of
// scores, which are never reordered.
func Rank(scores []float64, method RankMethod) []int {
	desc := make([]float64, len(scores))
	copy(desc, scores)
	sort.Sort(sort.Reverse(sort.Float64Slice(desc)))

	if method == RankDense {
		desc = dedupSorted(desc)
	}

	ranks := make([]int, len(scores))
	for i, s := range scores {
		// Position of the first value not greater than s: the number of
		// strictly greater scores (or distinct greater scores when dense).
		ranks[i] = sort.Search(len(desc), func(k int) bool { return desc[k] <= s }) + 1
	}
	return ranks
}

func dedupSorted(s []float64) []float64 {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
