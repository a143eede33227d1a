// Package metrics holds the service's domain metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcomes.
const (
	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

// Metrics groups the domain collectors registered by the service.
type Metrics struct {
	dispatches     *prometheus.CounterVec
	warehouseQuery *prometheus.HistogramVec
	chartFallbacks prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_dispatches_total",
				Help: "Report emails processed, by project and outcome.",
			},
			[]string{"project", "outcome"},
		),
		warehouseQuery: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "warehouse_query_duration_seconds",
				Help:    "Latency of warehouse queries.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation", "status"},
		),
		chartFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "report_chart_fallbacks_total",
			Help: "Reports rendered with the chart placeholder because rasterization was unavailable.",
		}),
	}

	for _, c := range []prometheus.Collector{m.dispatches, m.warehouseQuery, m.chartFallbacks} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Nop returns metrics bound to a private registry, for callers that do not expose them.
func Nop() *Metrics {
	m, _ := New(prometheus.NewRegistry())
	return m
}

func (m *Metrics) Dispatch(project, outcome string) {
	m.dispatches.WithLabelValues(project, outcome).Inc()
}

func (m *Metrics) ChartFallback() {
	m.chartFallbacks.Inc()
}

func (m *Metrics) observeQuery(operation string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.warehouseQuery.WithLabelValues(operation, status).Observe(seconds)
}
