package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// QueryDuration tracks catalog database query latency by query kind.
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog",
			Name:      "query_duration_seconds",
			Help:      "Catalog query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"query"},
	)

	// SuggestCacheTotal counts suggestion cache lookups by result.
	SuggestCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "suggest_cache_total",
			Help:      "Suggestion cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(SuggestCacheTotal)
}
