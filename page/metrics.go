package page

import "github.com/prometheus/client_golang/prometheus"

// Metrics instruments the contended paths by name: lock-acquisition
// spinning, timed-out TryLock calls, and counter
// bumps on unlock. A nil *Metrics disables instrumentation; every
// method here is safe to call on a nil receiver, so callers that don't
// care about metrics never have to nil-check.
type Metrics struct {
	lockSpins    prometheus.Counter
	lockTimeouts prometheus.Counter
	counterBumps *prometheus.CounterVec
}

// NewMetrics builds a Metrics and registers its collectors with reg.
// The core never registers metrics on its own initiative (no
// process-global side effects on import); a host process opts in by
// calling this once and handing it to the Versions it cares about via
// Version.WithMetrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lockSpins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pagecore_page_lock_spins_total",
			Help: "Number of spin iterations spent waiting for a page version lock or stable version.",
		}),
		lockTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pagecore_page_lock_timeouts_total",
			Help: "Number of TryLock calls that exceeded their timeout budget.",
		}),
		counterBumps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pagecore_page_version_counter_bumps_total",
			Help: "Number of insertion/split counter bumps performed on unlock.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.lockSpins, m.lockTimeouts, m.counterBumps)
	return m
}

func (m *Metrics) spun() {
	if m == nil {
		return
	}
	m.lockSpins.Inc()
}

func (m *Metrics) timedOut() {
	if m == nil {
		return
	}
	m.lockTimeouts.Inc()
}

func (m *Metrics) bumped(kind string) {
	if m == nil {
		return
	}
	m.counterBumps.WithLabelValues(kind).Inc()
}
