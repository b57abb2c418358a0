// Package metrics exposes Prometheus counters and histograms for appraisals
// and elevator travel on a dedicated registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "miner"

// Metrics implements appraisal.Recorder and elevator.TravelRecorder.
// All methods are safe on a nil receiver and do nothing.
type Metrics struct {
	registry *prometheus.Registry

	appraisals       *prometheus.CounterVec
	providerFailures *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	travels          *prometheus.CounterVec
}

// Options toggles the runtime collectors registered alongside ours.
type Options struct {
	GoMetrics      bool
	ProcessMetrics bool
}

// New creates and registers every metric.
func New(opts Options) *Metrics {
	reg := prometheus.NewRegistry()
	if opts.GoMetrics {
		reg.MustRegister(collectors.NewGoCollector())
	}
	if opts.ProcessMetrics {
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}))
	}

	m := &Metrics{
		registry: reg,
		appraisals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appraisals_total",
			Help:      "Appraisals completed, by the branch that produced the verdict.",
		}, []string{"path"}),
		providerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_failures_total",
			Help:      "Delegated generations that fell back to the heuristic, by reason.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "appraisal_duration_seconds",
			Help:      "Wall time of one appraisal, including the mock delay.",
			Buckets:   []float64{.01, .05, .1, .25, .5, .8, 1, 2.5, 5, 10},
		}, []string{"path"}),
		travels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elevator_travels_total",
			Help:      "Elevator travel attempts, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.appraisals, m.providerFailures, m.duration, m.travels)
	return m
}

// RecordAppraisal counts one appraisal. Unavailability is not a provider
// failure and is not counted as one.
func (m *Metrics) RecordAppraisal(path, failure string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.appraisals.WithLabelValues(path).Inc()
	m.duration.WithLabelValues(path).Observe(elapsed.Seconds())
	if failure != "" && failure != "unavailable" {
		m.providerFailures.WithLabelValues(failure).Inc()
	}
}

// RecordTravel counts one elevator travel attempt.
func (m *Metrics) RecordTravel(result string) {
	if m == nil {
		return
	}
	m.travels.WithLabelValues(result).Inc()
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
