package hermes

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRankingSubjects(t *testing.T) {
	id := "3f0c"
	tests := map[string]string{
		SubjectRankingCompleted(id): "topsis.ranking.3f0c.completed",
		SubjectRankingFailed(id):    "topsis.ranking.3f0c.failed",
		SubjectRankingDelivered(id): "topsis.ranking.3f0c.delivered",
	}
	for got, want := range tests {
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
		if !strings.HasPrefix(got, strings.TrimSuffix(SubjectRankingAll, ">")) {
			t.Errorf("subject %s not covered by stream subjects %s", got, SubjectRankingAll)
		}
	}
}

func TestStreamMaxAgeParses(t *testing.T) {
	d, err := time.ParseDuration(StreamMaxAge)
	if err != nil {
		t.Fatalf("invalid max age: %v", err)
	}
	if d != 30*24*time.Hour {
		t.Errorf("expected 30 days, got %v", d)
	}
}

func TestFailedEventJSON(t *testing.T) {
	ev := RankingFailedEvent{
		RankingID: "abc",
		Source:    "upload",
		Kind:      "count_mismatch",
		Error:     "Weights (2), Impacts (3), and Columns (3) count mismatch.",
		Details:   map[string]any{"weights": 2},
	}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["kind"] != "count_mismatch" {
		t.Errorf("expected kind in payload, got %v", decoded["kind"])
	}
	if _, ok := decoded["details"]; !ok {
		t.Error("expected details in payload")
	}
}
