// Package telemetry registers and records prometheus metrics for the bridge:
// inbound HTTP traffic and outbound CRM calls.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	httpDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	crmReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_requests_total",
			Help: "Total outbound CRM requests. status=0 means no HTTP response was received.",
		},
		[]string{"op", "method", "status"},
	)
	crmDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_request_duration_seconds",
			Help:    "Outbound CRM request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "method"},
	)
)

// Init registers all bridge metrics with the default registry. Call once at
// startup.
func Init() {
	prometheus.MustRegister(httpReqs, httpDur, crmReqs, crmDur)
}

// ObserveCRMRequest records one outbound CRM call.
func ObserveCRMRequest(op, method string, status int, duration time.Duration) {
	crmReqs.WithLabelValues(op, method, strconv.Itoa(status)).Inc()
	crmDur.WithLabelValues(op, method).Observe(duration.Seconds())
}

// Middleware records inbound request counts and latencies per chi route.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// get route pattern if available
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}

		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(ww, r)

		httpReqs.WithLabelValues(route, r.Method, strconv.Itoa(ww.status)).Inc()
		httpDur.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
