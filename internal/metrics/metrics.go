// Package metrics defines and registers all custom Prometheus metrics for the
// ATM client. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// entrypoint decides whether and where to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "atm"

// Result labels for OperationsTotal.
const (
	ResultSuccess     = "success"
	ResultInvalid     = "invalid_input"
	ResultRejected    = "rejected"
	ResultUnreachable = "unreachable"
)

// OperationsTotal counts orchestrator operations by outcome.
// Labels:
//   - operation: "register", "login", "balance", "withdraw", "deposit",
//     "transactions", "logout"
//   - result: see Result* constants
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_operations_total",
		Help:      "Total number of client operations, by operation and outcome.",
	},
	[]string{"operation", "result"},
)

// RequestDuration measures one round trip to the remote banking service.
// Label:
//   - endpoint: logical endpoint name (e.g. "balance", "withdraw")
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests to the remote banking service.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// SessionRestoresTotal counts startup session restores.
// Label:
//   - result: "restored", "none", "malformed"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of startup session restore attempts, by result.",
	},
	[]string{"result"},
)
