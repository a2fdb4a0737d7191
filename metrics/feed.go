// Package metrics holds the prometheus collectors of the proxy.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fpdsproxy"

// Upstream outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeTimeout   = "timeout"
	OutcomeHTTPError = "http_error"
	OutcomeMalformed = "malformed"
	OutcomeError     = "error"
)

var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Feed requests by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Feed request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		},
	)

	RecordsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "records_returned",
			Help:      "Contract records returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Feed cache hits and misses",
		},
		[]string{"result"}, // hit, miss, error
	)
)

var registerOnce sync.Once

// Register adds the feed collectors to the default registry. Repeated calls are no-ops.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(UpstreamRequestsTotal, UpstreamRequestDuration, RecordsReturned, CacheLookupsTotal)
	})
}

// ObserveUpstream records one feed request.
func ObserveUpstream(outcome string, d time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(outcome).Inc()
	UpstreamRequestDuration.Observe(d.Seconds())
}

// ObserveRecords records the number of records returned by one search.
func ObserveRecords(n int) {
	RecordsReturned.Observe(float64(n))
}

// ObserveCache records a cache lookup result: "hit", "miss" or "error".
func ObserveCache(result string) {
	CacheLookupsTotal.WithLabelValues(result).Inc()
}
