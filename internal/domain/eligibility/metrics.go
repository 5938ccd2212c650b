package eligibility

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts evaluation outcomes and individual failure reasons.
type Metrics struct {
	evaluations *prometheus.CounterVec
	reasons     *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "clinica",
				Subsystem: "eligibility",
				Name:      "evaluations_total",
				Help:      "Patient eligibility evaluations by outcome",
			},
			[]string{"outcome"},
		),
		reasons: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "clinica",
				Subsystem: "eligibility",
				Name:      "reasons_total",
				Help:      "Eligibility failure reasons reported",
			},
			[]string{"reason"},
		),
	}
	reg.MustRegister(m.evaluations, m.reasons)
	return m
}

func (m *Metrics) observe(r *Result) {
	if m == nil {
		return
	}
	outcome := "ineligible"
	if r.Eligible {
		outcome = "eligible"
	}
	m.evaluations.WithLabelValues(outcome).Inc()
	for _, reason := range r.Reasons {
		m.reasons.WithLabelValues(reason).Inc()
	}
}
