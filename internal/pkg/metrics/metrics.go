package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreQueryLatency records the latency of one cutoff store query, retries included
	StoreQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "engimate",
		Subsystem: "store",
		Name:      "query_latency_seconds",
		Help:      "Cutoff store query latency by query kind",
		Buckets:   prometheus.DefBuckets,
	}, []string{"query"})

	// StoreRetries counts retried store attempts
	StoreRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "engimate",
		Subsystem: "store",
		Name:      "retries_total",
		Help:      "Retried cutoff store attempts by query kind",
	}, []string{"query"})

	// StoreFailures counts queries that failed after all attempts
	StoreFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "engimate",
		Subsystem: "store",
		Name:      "failures_total",
		Help:      "Cutoff store queries that failed permanently by query kind",
	}, []string{"query"})

	// PredictionsServed counts successful prediction responses
	PredictionsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "engimate",
		Subsystem: "predictor",
		Name:      "predictions_total",
		Help:      "Prediction lists served by request kind",
	}, []string{"kind"})

	// PredictionSize observes the number of choices returned per prediction
	PredictionSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "engimate",
		Subsystem: "predictor",
		Name:      "choices_returned",
		Help:      "Number of college choices returned per prediction",
		Buckets:   []float64{0, 10, 25, 50, 100, 150, 160},
	})
)

// Prediction kinds
const (
	KindState    = "state"
	KindDual     = "dual"
	KindAllIndia = "all_india"
)
