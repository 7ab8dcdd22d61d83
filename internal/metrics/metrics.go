package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PayrollRecordsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payroll",
		Name:      "records_generated_total",
		Help:      "Payroll records created by batch generation.",
	})

	BatchItemFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payroll",
		Name:      "batch_item_failures_total",
		Help:      "Employees rejected from a batch with a structured failure.",
	})

	BatchItemsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payroll",
		Name:      "batch_items_skipped_total",
		Help:      "Employees skipped because an active record already existed.",
	})

	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "payroll",
		Name:      "batch_duration_seconds",
		Help:      "Wall time of one batch generation run.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
	})

	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payroll",
		Name:      "status_transitions_total",
		Help:      "Lifecycle transitions applied, by target status.",
	}, []string{"to_status"})

	OutboxPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payroll",
		Name:      "outbox_events_published_total",
		Help:      "Outbox events published to Kafka, by topic.",
	}, []string{"topic"})
)
