// Package metrics defines the custom Prometheus metrics of the API. It is the
// single source of truth for metric names, labels and help strings.
//
// Collectors are package-level so handlers can record without plumbing.
// Call Register once at startup with the registry served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aegisflow"

// ── Account metrics ───────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "inactive", "throttled" or "error"
var LoginAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created", "conflict", "invalid" or "error"
var SignupsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// ── Access control metrics ────────────────────────────────────────────────────

// AuthenticationFailuresTotal counts rejected bearer tokens.
// Label:
//   - reason: "missing_token", "expired", "invalid" or "inactive"
var AuthenticationFailuresTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authentication_failures_total",
		Help:      "Total number of requests rejected while resolving the bearer token.",
	},
	[]string{"reason"},
)

// AuthorizationDenialsTotal counts requests denied by a role or ownership gate.
// Label:
//   - route: the matched route path (e.g. "/projects/:id")
var AuthorizationDenialsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denials_total",
		Help:      "Total number of authenticated requests denied by an authorization gate.",
	},
	[]string{"route"},
)

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts newly created projects.
var ProjectsCreatedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

// Register adds every collector to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		LoginAttemptsTotal,
		SignupsTotal,
		AuthenticationFailuresTotal,
		AuthorizationDenialsTotal,
		ProjectsCreatedTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
