package report

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the Prometheus collectors for report generation.
// A nil *Metrics records nothing.
type Metrics struct {
	calls  *prometheus.CounterVec
	tokens *prometheus.CounterVec
	cost   prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_completion_calls_total",
				Help: "Completion calls made for trip reports, by outcome",
			},
			[]string{"outcome"},
		),
		tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_completion_tokens_total",
				Help: "Tokens consumed by completion calls, by kind",
			},
			[]string{"kind"},
		),
		cost: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "report_completion_cost_dollars_total",
			Help: "Nominal dollar cost of completion calls",
		}),
	}
	reg.MustRegister(m.calls, m.tokens, m.cost)
	return m
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(outcome).Inc()
}

func (m *Metrics) usage(prompt, completion int, cost float64) {
	if m == nil {
		return
	}
	m.tokens.WithLabelValues("prompt").Add(float64(prompt))
	m.tokens.WithLabelValues("completion").Add(float64(completion))
	m.cost.Add(cost)
}
