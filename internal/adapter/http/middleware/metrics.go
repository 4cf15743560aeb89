package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iho/hausledger/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counts and durations.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics recording.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// collections whose child segment is usually an ID
var idCollections = map[string]bool{
	"accounts": true,
	"entries":  true,
	"units":    true,
}

// static child segments that are sub-resources, not IDs
var staticChildren = map[string]bool{
	"seed": true,
	"code": true,
}

// normalizePath replaces resource IDs with a :id placeholder so metric
// label cardinality stays bounded.
func normalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i := 1; i < len(segments); i++ {
		if idCollections[segments[i-1]] && segments[i] != "" && !staticChildren[segments[i]] {
			segments[i] = ":id"
		}
	}

	return strings.Join(segments, "/")
}
