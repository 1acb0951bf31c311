// Package metrics holds the prometheus collectors for the scoring service.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scorebook"

type Metrics struct {
	registry *prometheus.Registry

	ballsRecorded     *prometheus.CounterVec
	wickets           prometheus.Counter
	ballsUndone       prometheus.Counter
	matchesCreated    prometheus.Counter
	matchesFinished   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	operationErrors   *prometheus.CounterVec
	liveClients       prometheus.Gauge
}

// New registers every collector on its own registry, so repeated calls in
// tests never collide.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		ballsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balls_recorded_total",
			Help:      "Deliveries written to the ball ledger, by ball type.",
		}, []string{"ball_type"}),
		wickets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wickets_total",
			Help:      "Deliveries recorded as wickets.",
		}),
		ballsUndone: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balls_undone_total",
			Help:      "Deliveries removed by undo.",
		}),
		matchesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_created_total",
			Help:      "Matches scheduled.",
		}),
		matchesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_finished_total",
			Help:      "Matches that reached a terminal status.",
		}, []string{"status"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of scoring operations including the store transaction.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		operationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_errors_total",
			Help:      "Scoring operations that returned an error.",
		}, []string{"operation"}),
		liveClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_clients",
			Help:      "Connected websocket viewers.",
		}),
	}

	registry.MustRegister(
		m.ballsRecorded,
		m.wickets,
		m.ballsUndone,
		m.matchesCreated,
		m.matchesFinished,
		m.operationDuration,
		m.operationErrors,
		m.liveClients,
	)
	return m
}

// Handler serves the /metrics scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveBall(ballType string, wicket bool) {
	if m == nil {
		return
	}
	m.ballsRecorded.WithLabelValues(ballType).Inc()
	if wicket {
		m.wickets.Inc()
	}
}

func (m *Metrics) ObserveUndo() {
	if m == nil {
		return
	}
	m.ballsUndone.Inc()
}

func (m *Metrics) ObserveMatchCreated() {
	if m == nil {
		return
	}
	m.matchesCreated.Inc()
}

func (m *Metrics) ObserveMatchFinished(status string) {
	if m == nil {
		return
	}
	m.matchesFinished.WithLabelValues(status).Inc()
}

// ObserveOperation records how long op took since start and whether it failed.
func (m *Metrics) ObserveOperation(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		m.operationErrors.WithLabelValues(op).Inc()
	}
}

func (m *Metrics) ClientConnected() {
	if m == nil {
		return
	}
	m.liveClients.Inc()
}

func (m *Metrics) ClientDisconnected() {
	if m == nil {
		return
	}
	m.liveClients.Dec()
}
