// Package metrics defines and registers all custom Prometheus metrics for
// the catalog API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto; per-route HTTP latencies come from the
// echoprometheus middleware, not from here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - op: "signup" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by operation and result.",
	},
	[]string{"op", "result"},
)

// ProductOpsTotal counts catalog mutations that completed successfully.
// Label:
//   - op: "create", "update", or "delete"
var ProductOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_ops_total",
		Help:      "Total number of successful catalog mutations, by operation.",
	},
	[]string{"op"},
)

// RateLimitRejectionsTotal counts requests rejected by the rate limiter.
// Label:
//   - class: endpoint class ("signup", "login", "mutate", "read")
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of requests rejected by the rate limiter, by endpoint class.",
	},
	[]string{"class"},
)

// ListCacheTotal counts product list cache lookups.
// Label:
//   - result: "hit" or "miss"
var ListCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_cache_total",
		Help:      "Total number of product list cache lookups, by result.",
	},
	[]string{"result"},
)
