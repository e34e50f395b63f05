package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// End reasons for sessions that did not complete.
const (
	EndAbandoned = "abandoned"
	EndExpired   = "expired"
	EndEvicted   = "evicted"
)

// Answer outcomes.
const (
	AnswerAccepted  = "accepted"
	AnswerInvalid   = "invalid"
	AnswerCompleted = "completed"
)

// Metrics exposes Prometheus collectors for assessment activity. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry prometheus.Gatherer

	started   prometheus.Counter
	completed *prometheus.CounterVec
	ended     *prometheus.CounterVec
	answers   *prometheus.CounterVec
	answered  prometheus.Histogram
	active    prometheus.Gauge
}

// New registers the collectors on a fresh registry, so several instances
// can coexist (tests, multiple servers in one process).
func New() *Metrics {
	return MustNew(prometheus.NewRegistry())
}

// MustNew registers the collectors on reg and panics on registration
// errors, like the promauto helpers.
func MustNew(reg prometheus.Registerer) *Metrics {
	const ns, sub = "tizhi", "assessment"
	m := &Metrics{
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "sessions_started_total",
			Help: "Assessments started.",
		}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "sessions_completed_total",
			Help: "Assessments completed, by primary constitution.",
		}, []string{"primary"}),
		ended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "sessions_ended_total",
			Help: "Assessments discarded before completion, by reason.",
		}, []string{"reason"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "answers_total",
			Help: "Submitted answers, by outcome.",
		}, []string{"outcome"}),
		answered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns, Subsystem: sub,
			Name:    "questions_answered",
			Help:    "Questions answered per completed assessment.",
			Buckets: []float64{9, 11, 13},
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: sub,
			Name: "sessions_active",
			Help: "Assessments currently held in memory.",
		}),
	}
	reg.MustRegister(m.started, m.completed, m.ended, m.answers, m.answered, m.active)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.registry = g
	}
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) IncStarted() {
	if m == nil {
		return
	}
	m.started.Inc()
}

// ObserveCompleted records a completed assessment and how many questions
// it took.
func (m *Metrics) ObserveCompleted(primary string, answered int) {
	if m == nil {
		return
	}
	m.completed.WithLabelValues(primary).Inc()
	m.answered.Observe(float64(answered))
}

func (m *Metrics) IncEnded(reason string) {
	if m == nil {
		return
	}
	m.ended.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncAnswer(outcome string) {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetActive(n int) {
	if m == nil {
		return
	}
	m.active.Set(float64(n))
}
