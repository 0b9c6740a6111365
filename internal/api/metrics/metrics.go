// Package metrics defines the Prometheus counters for session transitions.
// They register with the default registry on import via promauto and are
// exposed on /metrics alongside the echoprometheus request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gotrek"

// Result label values.
const (
	ResultOK        = "ok"
	ResultInvalid   = "invalid_input"
	ResultRejected  = "rejected"
	ResultCorrupted = "corrupted"
	ResultError     = "error"
)

// SignupsTotal counts signup attempts.
// Label:
//   - result: ok, invalid_input, rejected (email taken), corrupted, error
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: ok, invalid_input, rejected (bad credentials), corrupted, error
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logout calls, including repeated ones.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout calls.",
	},
)
