package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private prometheus registry for the HTTP shell.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	renderSeconds *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "biorhythms",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route template and status code.",
		}, []string{"route", "code"}),
		renderSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "biorhythms",
			Name:      "chart_render_seconds",
			Help:      "Time spent rendering a chart, by output format.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"format"}),
	}
	m.registry.MustRegister(m.requests, m.renderSeconds)
	return m
}

// Handler serves the registry for /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRender(format string, d time.Duration) {
	m.renderSeconds.WithLabelValues(format).Observe(d.Seconds())
}

// Middleware counts requests per matched route template.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.requests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
