package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes used as the "outcome" label.
const (
	OutcomeSuccess      = "success"
	OutcomeConnectivity = "connectivity"
	OutcomeApplication  = "application"
	OutcomeParse        = "parse"
	OutcomeUnknown      = "unknown"
)

// Metrics tracks employee fetches: outcomes, latency and the size of the last rendered list.
type Metrics struct {
	Fetches          *prometheus.CounterVec
	FetchDuration    prometheus.Histogram
	EmployeesVisible prometheus.Gauge
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Fetches: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employees_fetch_total",
			Help: "Employee list fetches by outcome.",
		}, []string{"outcome"}),
		FetchDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "employees_fetch_duration_seconds",
			Help:    "Time from request start to resolution.",
			Buckets: prometheus.DefBuckets,
		}),
		EmployeesVisible: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "employees_rendered",
			Help: "Number of employees in the last rendered list.",
		}),
	}

	for _, o := range []string{OutcomeSuccess, OutcomeConnectivity, OutcomeApplication, OutcomeParse} {
		m.Fetches.WithLabelValues(o)
	}
	return m
}

// ObserveFetch records one resolved fetch. Safe on a nil receiver.
func (m *Metrics) ObserveFetch(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(outcome).Inc()
	m.FetchDuration.Observe(elapsed.Seconds())
}

// SetRendered records how many employees are on screen. Safe on a nil receiver.
func (m *Metrics) SetRendered(n int) {
	if m == nil {
		return
	}
	m.EmployeesVisible.Set(float64(n))
}
