package httpvalidator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Validation phases used as the "phase" label.
const (
	PhaseResolve  = "resolve"
	PhaseBody     = "body"
	PhaseQuery    = "query"
	PhaseResponse = "response"
)

// Validation outcomes used as the "outcome" label.
const (
	OutcomePass = "pass"
	OutcomeFail = "fail"
)

// Metrics holds the Prometheus collectors updated by a Validator.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Validations *prometheus.CounterVec
	Fallbacks   prometheus.Counter
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates the validation collectors. They are not registered;
// use Register or register Collectors() with a registry of your choice.
func NewMetrics() *Metrics {
	return &Metrics{
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "oasschema",
				Subsystem: "validation",
				Name:      "total",
				Help:      "Total number of validation attempts by phase and outcome",
			},
			[]string{"phase", "outcome"},
		),

		Fallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "oasschema",
				Subsystem: "validation",
				Name:      "fallbacks_total",
				Help:      "Total number of requests validated against the query schema after the body schema failed",
			},
		),

		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "oasschema",
				Subsystem: "validation",
				Name:      "duration_seconds",
				Help:      "Validation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
	}
}

// Collectors returns every collector held by m.
func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.Validations, m.Fallbacks, m.Duration}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordValidation increments the counter for phase with the outcome of err.
func (m *Metrics) RecordValidation(phase string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomePass
	if err != nil {
		outcome = OutcomeFail
	}
	m.Validations.WithLabelValues(phase, outcome).Inc()
}

// RecordFallback increments the fallback counter.
func (m *Metrics) RecordFallback() {
	if m == nil {
		return
	}
	m.Fallbacks.Inc()
}

// RecordDuration records how long a phase took.
func (m *Metrics) RecordDuration(phase string, d time.Duration) {
	if m == nil {
		return
	}
	m.Duration.WithLabelValues(phase).Observe(d.Seconds())
}
