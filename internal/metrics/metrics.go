package metrics // import "github.com/isidore-books/isidore/internal/metrics"

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sliceQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "isidore",
		Name:      "slice_query_duration_seconds",
		Help:      "Duration of catalog slice queries (count plus data).",
		Buckets:   prometheus.DefBuckets,
	}, []string{"family"})

	detailQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isidore",
		Name:      "detail_queries_total",
		Help:      "Number of per-book detail assemblies.",
	}, []string{"kind"})
)

func ObserveSliceQuery(family string, d time.Duration) {
	sliceQueryDuration.WithLabelValues(family).Observe(d.Seconds())
}

func CountDetailQuery(kind string) {
	detailQueries.WithLabelValues(kind).Inc()
}
