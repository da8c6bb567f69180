package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/Topsis/internal/topsis"
)

const namespace = "topsis"

// Recorder holds the ranking collectors. A nil *Recorder is valid and records
// nothing.
type Recorder struct {
	rankings     *prometheus.CounterVec
	failures     *prometheus.CounterVec
	duration     prometheus.Histogram
	alternatives prometheus.Histogram
	deliveries   *prometheus.CounterVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		rankings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rankings_total",
			Help:      "Ranking requests by outcome.",
		}, []string{"outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranking_failures_total",
			Help:      "Failed rankings by error kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_duration_seconds",
			Help:      "Time spent validating and scoring a table.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		alternatives: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_alternatives",
			Help:      "Number of alternatives per successful ranking.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Result deliveries by channel and outcome.",
		}, []string{"channel", "outcome"}),
	}
	reg.MustRegister(r.rankings, r.failures, r.duration, r.alternatives, r.deliveries)
	return r
}

// ObserveRanking records one ranking attempt.
func (r *Recorder) ObserveRanking(elapsed time.Duration, res *topsis.RankedResult, err error) {
	if r == nil {
		return
	}
	r.duration.Observe(elapsed.Seconds())
	if err != nil {
		r.rankings.WithLabelValues("failed").Inc()
		r.failures.WithLabelValues(KindOf(err)).Inc()
		return
	}
	r.rankings.WithLabelValues("succeeded").Inc()
	r.alternatives.Observe(float64(len(res.Rows)))
}

// ObserveDelivery records one delivery attempt on channel ("email", "hermes").
func (r *Recorder) ObserveDelivery(channel string, err error) {
	if r == nil {
		return
	}
	outcome := "delivered"
	if err != nil {
		outcome = "failed"
	}
	r.deliveries.WithLabelValues(channel, outcome).Inc()
}

// KindOf returns the validation kind of err, or "internal" for anything else.
func KindOf(err error) string {
	var verr *topsis.ValidationError
	if errors.As(err, &verr) {
		return string(verr.Kind)
	}
	return "internal"
}
