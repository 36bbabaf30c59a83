// Package metrics defines and registers all custom Prometheus metrics for the
// parking client. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto; the console exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "parking_client"

// RequestsTotal counts completed API calls.
// Labels:
//   - method: HTTP method of the call
//   - status: numeric response status, or "0" for timeouts/transport failures
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of API requests issued, by method and response status.",
	},
	[]string{"method", "status"},
)

// RequestDuration measures end-to-end latency of API calls, retries included.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of API requests from dispatch to final response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// TokenRefreshTotal counts refresh attempts by outcome.
// Label:
//   - result: "success", "failure", or "missing" (no refresh token stored)
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of access-token refresh attempts, by result.",
	},
	[]string{"result"},
)

// RetriesTotal counts calls replayed after a successful refresh.
var RetriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retries_total",
		Help:      "Total number of requests retried after a token refresh.",
	},
)

// SessionEndsTotal counts terminal auth failures that forced a full
// credential clear.
var SessionEndsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_ends_total",
		Help:      "Total number of sessions terminated by refresh failure or logout.",
	},
)
