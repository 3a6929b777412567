package infra

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry   *prometheus.Registry
	stages     *prometheus.HistogramVec
	stageFails *prometheus.CounterVec
	thumbnails *prometheus.CounterVec
	requests   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stages: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reels",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		stageFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reels",
			Name:      "stage_failures_total",
			Help:      "Pipeline stage failures.",
		}, []string{"stage"}),
		thumbnails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reels",
			Name:      "thumbnail_results_total",
			Help:      "Thumbnail relay outcomes.",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reels",
			Name:      "http_requests_total",
			Help:      "Handled requests by route and status.",
		}, []string{"route", "status"}),
	}
	m.registry.MustRegister(m.stages, m.stageFails, m.thumbnails, m.requests)
	return m
}

func (m *Metrics) ObserveStage(stage string, d time.Duration, err error) {
	m.stages.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		m.stageFails.WithLabelValues(stage).Inc()
	}
}

func (m *Metrics) ThumbnailResult(result string) {
	m.thumbnails.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRequest(route string, status int) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
