package middleware

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

// MetricsMiddleware conta as requisições e mede sua duração
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lrw := newLoggingResponseWriter(w)
			start := time.Now()

			next.ServeHTTP(lrw, r)

			m.ObserveRequest(r.Method, lrw.statusCode, time.Since(start))
		})
	}
}
