package process

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/terrareach/reach"
)

var (
	// searchTotal counts completed searches by status.
	// Labels: "reachable", "unreachable"
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terrareach_search_total",
		Help: "Completed reachability searches by status",
	}, []string{"status"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "terrareach_search_duration_seconds",
		Help:    "Wall time of one reachability request",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30},
	})

	searchAccepted = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "terrareach_search_accepted_cells",
		Help:    "Cells accepted per search",
		Buckets: prometheus.ExponentialBuckets(1, 10, 8),
	})

	// searchErrors counts failed requests.
	// Labels: "invalid_input", "canceled", "limit", "internal"
	searchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terrareach_search_errors_total",
		Help: "Failed reachability requests by kind",
	}, []string{"kind"})
)

// errorKind classifies err for the errors metric and logs.
func errorKind(err error) string {
	switch {
	case IsInvalidInput(err):
		return "invalid_input"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, reach.ErrAcceptLimit):
		return "limit"
	}
	return "internal"
}
