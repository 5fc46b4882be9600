package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for paginated fetches.
var (
	neisPagesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neis_pages_fetched_total",
		Help: "Total pages fetched by resource",
	}, []string{"resource"})

	neisRowsFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neis_rows_fetched_total",
		Help: "Total rows accumulated by resource",
	}, []string{"resource"})

	neisFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "neis_fetch_duration_seconds",
		Help:    "Duration of complete multi-page fetches by resource",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"resource"})
)
