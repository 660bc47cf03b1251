package selection

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SelectionSize tracks the number of selected IDs
	SelectionSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_selection_size",
			Help: "Number of record IDs currently selected",
		},
	)

	// SelectionOperations tracks store operations by kind
	SelectionOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_selection_operations_total",
			Help: "Total number of selection store operations",
		},
		[]string{"operation"}, // "reconcile", "select_first_n", "clear"
	)
)
