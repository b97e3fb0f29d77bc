package metrics

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the API's Prometheus instruments. A nil *Collector is
// valid and records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Requests         *prometheus.CounterVec
	RequestDurations *prometheus.HistogramVec
	FixtureLoads     *prometheus.CounterVec
	Simulations      prometheus.Counter
	AlertsGenerated  prometheus.Counter
	KPIStatus        *prometheus.CounterVec
}

// New registers the collectors against reg, or the default registry when
// reg is nil. Registering twice on the same registry reuses the existing
// collectors.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	c.Requests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kpi_api_requests_total",
		Help: "HTTP requests handled, by route and status code.",
	}, []string{"route", "code"}))
	if err != nil {
		return nil, err
	}

	c.RequestDurations, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kpi_api_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route"}))
	if err != nil {
		return nil, err
	}

	c.FixtureLoads, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kpi_api_fixture_loads_total",
		Help: "Base snapshot loads, by source and result.",
	}, []string{"source", "result"}))
	if err != nil {
		return nil, err
	}

	c.Simulations, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kpi_api_simulations_total",
		Help: "Live snapshots derived from the base snapshot.",
	}))
	if err != nil {
		return nil, err
	}

	c.AlertsGenerated, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kpi_api_alerts_generated_total",
		Help: "Alerts synthesized by alert rotation.",
	}))
	if err != nil {
		return nil, err
	}

	c.KPIStatus, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kpi_api_kpi_status_total",
		Help: "Simulated KPI classifications, by KPI and status.",
	}, []string{"kpi", "status"}))
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveRequest(route string, code int, seconds float64) {
	if c == nil {
		return
	}
	c.Requests.WithLabelValues(route, fmt.Sprint(code)).Inc()
	c.RequestDurations.WithLabelValues(route).Observe(seconds)
}

func (c *Collector) ObserveFixtureLoad(source string, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.FixtureLoads.WithLabelValues(source, result).Inc()
}

// ObserveSimulation records one simulated tick and the resulting statuses.
func (c *Collector) ObserveSimulation(alertsGenerated int, statuses map[string]string) {
	if c == nil {
		return
	}
	c.Simulations.Inc()
	c.AlertsGenerated.Add(float64(alertsGenerated))
	for kpi, status := range statuses {
		c.KPIStatus.WithLabelValues(kpi, status).Inc()
	}
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector already registered with incompatible type: %w", err)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
