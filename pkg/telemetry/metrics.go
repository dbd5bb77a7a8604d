// Package telemetry holds the Prometheus collectors and the gin middleware
// shared by both front-ends.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is a set of collectors registered on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	predictions    *prometheus.CounterVec
	predictionTime *prometheus.HistogramVec
	modelAvailable prometheus.Gauge
	requests       *prometheus.CounterVec
	requestTime    *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors, plus the Go runtime and
// process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "houseprice_predictions_total",
			Help: "Total number of price estimates by front-end and outcome.",
		}, []string{"frontend", "outcome"}),
		predictionTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "houseprice_prediction_duration_seconds",
			Help:    "Time spent producing one price estimate.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"frontend"}),
		modelAvailable: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "houseprice_model_available",
			Help: "1 when the model artifact was loaded, 0 otherwise.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "houseprice_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "houseprice_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
	m.registry.MustRegister(
		m.predictions, m.predictionTime, m.modelAvailable, m.requests, m.requestTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// SetModelAvailable records whether the artifact is loaded.
func (m *Metrics) SetModelAvailable(ok bool) {
	if ok {
		m.modelAvailable.Set(1)
		return
	}
	m.modelAvailable.Set(0)
}

// Observer returns a valuation observer that labels estimates with frontend.
func (m *Metrics) Observer(frontend string) *Observer {
	return &Observer{metrics: m, frontend: frontend}
}

// Observer records estimate outcomes for one front-end.
type Observer struct {
	metrics  *Metrics
	frontend string
}

// ObservePrediction implements valuation.Observer.
func (o *Observer) ObservePrediction(outcome string, elapsed time.Duration) {
	o.metrics.predictions.WithLabelValues(o.frontend, outcome).Inc()
	o.metrics.predictionTime.WithLabelValues(o.frontend).Observe(elapsed.Seconds())
}
