// Package metrics defines and registers all custom Prometheus metrics for
// the webauth service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "webauth"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "duplicate", "invalid", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionLoadFailures counts session loads that degraded to an anonymous
// session.
// Label:
//   - reason: "unavailable" (store unreachable) or "corrupt" (bad payload)
var SessionLoadFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_load_failures_total",
		Help:      "Session loads that fell back to an empty session, by reason.",
	},
	[]string{"reason"},
)

// SessionSaveFailures counts session write-backs that were dropped. The
// response still reaches the client when this fires.
var SessionSaveFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_save_failures_total",
		Help:      "Session write-backs that failed after the handler ran.",
	},
)
