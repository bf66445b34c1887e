// Package metrics defines the custom Prometheus metrics of the Cinescope test
// client and its twin. It is the single source of truth for metric names,
// labels, and help strings. Metrics live on the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cinescope"

// ── Client metrics ────────────────────────────────────────────────────────────

// ClientRequestsTotal counts requests sent by the requester.
// Labels:
//   - method: HTTP method
//   - status: actual response status code, or "error" on transport failure
var ClientRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Total number of requests sent to Cinescope, by method and status.",
	},
	[]string{"method", "status"},
)

// ClientStatusMismatchesTotal counts responses whose status differed from the
// declared expectation.
var ClientStatusMismatchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "status_mismatches_total",
		Help:      "Total number of responses whose status differed from the expected one.",
	},
	[]string{"method"},
)

var ClientRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Round-trip duration of requests sent to Cinescope.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Twin metrics ──────────────────────────────────────────────────────────────

// TwinLoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var TwinLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "twin",
		Name:      "logins_total",
		Help:      "Total number of login attempts handled by the twin.",
	},
	[]string{"result"},
)

// TwinMoviesCreatedTotal counts created movies by location.
var TwinMoviesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "twin",
		Name:      "movies_created_total",
		Help:      "Total number of movies created through the twin, by location.",
	},
	[]string{"location"},
)

// ── Scenario metrics ─────────────────────────────────────────────────────────

// ScenarioQueueDepth tracks pending steps per scenario worker.
var ScenarioQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "scenario",
		Name:      "queue_depth",
		Help:      "Current number of steps pending in each scenario worker channel.",
	},
	[]string{"worker_id"},
)

var ScenarioStepsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "scenario",
		Name:      "steps_total",
		Help:      "Total number of scenario steps run, by result.",
	},
	[]string{"result"},
)
