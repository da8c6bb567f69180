package hermes

import "time"

type RankingCompletedEvent struct {
	RankingID    string    `json:"ranking_id"`
	Source       string    `json:"source"`
	Alternatives int       `json:"alternatives"`
	Criteria     int       `json:"criteria"`
	Best         []string  `json:"best"`
	DurationMs   float64   `json:"duration_ms"`
	Timestamp    time.Time `json:"timestamp"`
}

type RankingFailedEvent struct {
	RankingID string         `json:"ranking_id"`
	Source    string         `json:"source"`
	Kind      string         `json:"kind"`
	Error     string         `json:"error"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type RankingDeliveredEvent struct {
	RankingID string    `json:"ranking_id"`
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Delivered bool      `json:"delivered"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
