// Package metrics exposes the Prometheus registry used by this module.
// Collectors are defined next to the code that updates them (client,
// selection) and registered there via promauto.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registerer every collector in this module uses.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the gatherer paired with Registry.
var Gatherer = prometheus.DefaultGatherer

// Handler serves the metrics in Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Page Loader Metrics (pkg/client):
//   - catalog_requests_total{status} (Counter): page requests by HTTP status or "network_error"
//   - catalog_request_duration_seconds (Histogram): page request duration
//   - catalog_fetch_errors_total{class} (Counter): failed loads by class (client, server, network, decode)
//
// Selection Metrics (pkg/selection):
//   - catalog_selection_size (Gauge): IDs currently selected
//   - catalog_selection_operations_total{operation} (Counter): reconcile, select_first_n, clear
//
// Example Prometheus Queries:
//
//   # Page load error rate
//   sum(rate(catalog_fetch_errors_total[5m])) / sum(rate(catalog_requests_total[5m]))
//
//   # P95 page load latency
//   histogram_quantile(0.95, rate(catalog_request_duration_seconds_bucket[5m]))
