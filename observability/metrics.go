// Package observability exposes Prometheus metrics and process statistics.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "multilingo"

// Metrics holds every service metric on a dedicated registry.
type Metrics struct {
	registry           *prometheus.Registry
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	intents            *prometheus.CounterVec
	translations       *prometheus.CounterVec
	persistenceDropped prometheus.Counter
	processCPU         prometheus.Gauge
	processMemory      prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		intents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "chat",
				Name:      "intents_total",
				Help:      "Classified chat messages by intent and outcome",
			},
			[]string{"intent", "success"},
		),
		translations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "translation",
				Name:      "requests_total",
				Help:      "Translation requests by outcome (ok, unavailable, timeout)",
			},
			[]string{"outcome"},
		),
		persistenceDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "persistence",
				Name:      "dropped_total",
				Help:      "Records dropped because the persistence queue was full",
			},
		),
		processCPU: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "process",
				Name:      "cpu_percent",
				Help:      "CPU usage of the service process, last sample",
			},
		),
		processMemory: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "process",
				Name:      "memory_percent",
				Help:      "Share of system memory used by the service process, last sample",
			},
		),
	}
	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.intents,
		m.translations,
		m.persistenceDropped,
		m.processCPU,
		m.processMemory,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) CountIntent(intent string, success bool) {
	m.intents.WithLabelValues(intent, strconv.FormatBool(success)).Inc()
}

func (m *Metrics) CountTranslation(outcome string) {
	m.translations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CountDropped() {
	m.persistenceDropped.Inc()
}

func (m *Metrics) ObserveProcess(stats ProcessStats) {
	m.processCPU.Set(stats.CPUPercent)
	m.processMemory.Set(float64(stats.MemoryPercent))
}
