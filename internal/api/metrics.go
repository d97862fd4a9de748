package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Metrics collects request counters and serves them as JSON at /metrics.
type Metrics struct {
	requests    atomic.Int64
	clientErrs  atomic.Int64
	serverErrs  atomic.Int64
	rateLimited atomic.Int64
	inFlight    atomic.Int64
	startTime   time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

func (m *Metrics) IncrRateLimited() { m.rateLimited.Add(1) }

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inFlight.Add(1)
		defer m.inFlight.Add(-1)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		m.requests.Add(1)
		switch status := ww.Status(); {
		case status >= 500:
			m.serverErrs.Add(1)
		case status >= 400:
			m.clientErrs.Add(1)
		}
	})
}

func (m *Metrics) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	data := map[string]any{
		"uptime_seconds": int(time.Since(m.startTime).Seconds()),
		"requests":       m.requests.Load(),
		"client_errors":  m.clientErrs.Load(),
		"server_errors":  m.serverErrs.Load(),
		"rate_limited":   m.rateLimited.Load(),
		"in_flight":      m.inFlight.Load(),
		"goroutines":     runtime.NumGoroutine(),
		"heap_alloc_mb":  mem.HeapAlloc / 1024 / 1024,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
