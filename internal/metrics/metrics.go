// Package metrics exposes the service's Prometheus counters. Helpers keep
// call sites one-liners; the registry is the default global one, served by
// the HTTP adapter on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transtrack_orders_created_total",
		Help: "Orders created, by priority.",
	}, []string{"priority"})

	statusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transtrack_order_status_transitions_total",
		Help: "Order status transitions, by target status.",
	}, []string{"to"})

	escalationsTriggered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transtrack_escalations_triggered_total",
		Help: "Escalation rules fired, by condition.",
	}, []string{"condition"})

	importRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transtrack_import_rows_total",
		Help: "Bulk import rows processed, by classification.",
	}, []string{"status"})

	syncAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transtrack_sync_attempts_total",
		Help: "External sync dispatch attempts, by outcome.",
	}, []string{"outcome"})
)

func IncrementOrdersCreated(priority string) {
	ordersCreated.WithLabelValues(priority).Inc()
}

func IncrementStatusTransition(to string) {
	statusTransitions.WithLabelValues(to).Inc()
}

func IncrementEscalationTriggered(condition string) {
	escalationsTriggered.WithLabelValues(condition).Inc()
}

func IncrementImportRow(status string) {
	importRows.WithLabelValues(status).Inc()
}

func IncrementSyncAttempt(outcome string) {
	syncAttempts.WithLabelValues(outcome).Inc()
}
