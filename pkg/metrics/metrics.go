// Package metrics provides the Prometheus registry used by the NEIS client.
// All metrics are defined in their respective packages (client, pagination,
// stats) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the NEIS client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the gatherer matching Registry, served by the proxy on /metrics.
var Gatherer = prometheus.DefaultGatherer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - neis_requests_total{resource, status} (Counter): Page requests by resource and HTTP status
//   - neis_request_duration_seconds{resource} (Histogram): Page request duration by resource
//   - neis_errors_total{class} (Counter): Failed fetches by class (transport, http_status, decode, result)
//
// Pagination Metrics (pkg/pagination):
//   - neis_pages_fetched_total{resource} (Counter): Pages decoded by resource
//   - neis_rows_fetched_total{resource} (Counter): Rows accumulated by resource
//   - neis_fetch_duration_seconds{resource} (Histogram): Duration of complete multi-page fetches
//
// Stats Metrics (pkg/stats):
//   - neis_stats_write_errors_total (Counter): Failed writes of fetch statistics to Redis
//
// Example Prometheus Queries:
//
//   # Pages per fetch
//   rate(neis_pages_fetched_total[5m]) / rate(neis_fetch_duration_seconds_count[5m])
//
//   # Error Rate by class
//   sum by (class) (rate(neis_errors_total[5m]))
//
//   # P95 Page Latency
//   histogram_quantile(0.95, rate(neis_request_duration_seconds_bucket[5m]))
//
//   # Rows per second by resource
//   sum by (resource) (rate(neis_rows_fetched_total[5m]))
