// Package metrics defines and registers all custom Prometheus metrics for the
// store-rating API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default registry via promauto; the
// echoprometheus middleware adds the standard HTTP request metrics on top.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ratemystore"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts completed registrations.
// Label:
//   - role: the self-selected role ("admin", "store_owner", "user")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed user registrations, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "denied"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Rating metrics ────────────────────────────────────────────────────────────

// RatingMutationsTotal counts successful rating writes.
// Label:
//   - action: "submitted" or "deleted"
var RatingMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rating_mutations_total",
		Help:      "Total number of successful rating submissions and deletions.",
	},
	[]string{"action"},
)

// StatsCacheTotal counts aggregate-cache lookups.
// Label:
//   - result: "hit" or "miss"
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of rating-stats cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Activity feed metrics ─────────────────────────────────────────────────────

// ActivityProcessedTotal counts rating events recorded by the workers.
// Label:
//   - action: "submitted" or "deleted"
var ActivityProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_events_processed_total",
		Help:      "Total number of rating events recorded to the audit feed.",
	},
	[]string{"action"},
)

// ActivityErrorsTotal counts rating events that failed to record.
// Label:
//   - reason: short description of the failure (e.g. "insert_failed")
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_events_errors_total",
		Help:      "Total number of rating events that failed to record.",
	},
	[]string{"reason"},
)

// ActivityProcessingDuration measures how long recording a single rating
// event takes, from dequeue to persistence.
// Label:
//   - action: "submitted" or "deleted"
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_event_processing_duration_seconds",
		Help:      "Duration of rating-event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)

// ActivityQueueDepth tracks the number of events waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of rating events pending in each worker channel.",
	},
	[]string{"worker_id"},
)
