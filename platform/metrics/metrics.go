// Package metrics holds the Prometheus collectors shared by the API and the
// scheduler. This is part of the platform layer and contains no business logic.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CascadeTotal counts downstream stage creations by target stage and outcome
	// (created or skipped).
	CascadeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderflow",
		Name:      "cascade_total",
		Help:      "Downstream stage records created or skipped by the cascade controller.",
	}, []string{"stage", "outcome"})

	// ReconcileItemsTotal counts sub-ledger rows added and removed.
	ReconcileItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderflow",
		Name:      "reconcile_items_total",
		Help:      "Sub-ledger rows added or removed by category reconciliation.",
	}, []string{"stage", "action"})

	// CategoryDefaultedTotal counts categories classified as internal by fallback.
	CategoryDefaultedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "orderflow",
		Name:      "category_defaulted_total",
		Help:      "Categories missing from the registry that defaulted to internal.",
	})

	// ProductionStatusChanges counts validator outcomes that changed the stored status.
	ProductionStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderflow",
		Name:      "production_status_changes_total",
		Help:      "Production status changes applied by the status validator.",
	}, []string{"to"})

	// JobRunsTotal counts recurring recompute job runs by outcome.
	JobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderflow",
		Name:      "job_runs_total",
		Help:      "Recurring recompute job runs by task and outcome.",
	}, []string{"task", "outcome"})

	// JobDuration observes recompute job wall time.
	JobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "orderflow",
		Name:      "job_duration_seconds",
		Help:      "Recurring recompute job duration.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"task"})
)

// Handler exposes the default registry for gin.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
