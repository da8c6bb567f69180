package hermes

const (
	SubjectRankingAll = "topsis.ranking.>"

	StreamName   = "TOPSIS_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectRankingCompleted(rankingID string) string {
	return "topsis.ranking." + rankingID + ".completed"
}

func SubjectRankingFailed(rankingID string) string {
	return "topsis.ranking." + rankingID + ".failed"
}

func SubjectRankingDelivered(rankingID string) string {
	return "topsis.ranking." + rankingID + ".delivered"
}
