// Package metrics defines and registers all custom Prometheus metrics for the
// heritage platform API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "heritage"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ContentCreatedTotal counts newly created content items.
// Label:
//   - kind: "article", "culture", "quiz", or "report"
var ContentCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_created_total",
		Help:      "Total number of content items created, by kind.",
	},
	[]string{"kind"},
)

// ModerationTransitionsTotal counts successful lifecycle transitions.
// Labels:
//   - from: the previous lifecycle status
//   - to: the new lifecycle status
var ModerationTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_transitions_total",
		Help:      "Total number of successful content lifecycle transitions.",
	},
	[]string{"from", "to"},
)

// ModerationErrorsTotal counts rejected transition attempts.
// Label:
//   - reason: "illegal_transition", "forbidden", "missing_reason", "stale_status", or "other"
var ModerationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_errors_total",
		Help:      "Total number of content lifecycle transitions that were refused.",
	},
	[]string{"reason"},
)

// ReportDedupTotal counts deduplication decisions on anonymous reports.
// Label:
//   - result: "hit" (duplicate, refused) or "miss" (new report, accepted)
var ReportDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_dedup_total",
		Help:      "Total number of anonymous report dedup checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the number of moderation events waiting in each
// audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of moderation events pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)
