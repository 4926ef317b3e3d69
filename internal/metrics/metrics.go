package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gatherly"

// Registry is the Prometheus registry all server metrics register with.
var Registry = prometheus.NewRegistry()

// AppInfo exposes version information as labels, always set to 1.
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always set to 1, version info in labels)",
	},
	[]string{"version"},
)

// RegistrationsTotal counts public attendee registrations by outcome.
var RegistrationsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of public registration attempts",
	},
	[]string{"outcome"},
)

// LoginsTotal counts admin login attempts by outcome.
var LoginsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of admin login attempts",
	},
	[]string{"outcome"},
)
