// Package trace tags every request with an id, logs its start and end, and
// keeps request counters for /metrics.
package trace

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"fintrack/internal/log"

	"github.com/google/uuid"
)

type contextKey struct{}

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxCallerIDLen = 64

// Middleware assigns request ids and logs each request.
type Middleware struct {
	clientIP func(*http.Request) string
	events   *log.StructuredLogger

	total        atomic.Int64
	inFlight     atomic.Int64
	clientErrors atomic.Int64
	serverErrors atomic.Int64
	lastMicros   atomic.Int64
}

// Metrics is a snapshot of the request counters.
type Metrics struct {
	TotalRequests      int64
	InFlight           int64
	ClientErrors       int64
	ServerErrors       int64
	LastDurationMicros int64
}

// NewMiddleware builds the tracer. Both arguments may be nil.
func NewMiddleware(clientIP func(*http.Request) string, events *log.StructuredLogger) *Middleware {
	return &Middleware{clientIP: clientIP, events: events}
}

func (m *Middleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.total.Add(1)
		m.inFlight.Add(1)
		defer m.inFlight.Add(-1)

		ip := ""
		if m.clientIP != nil {
			ip = m.clientIP(r)
		}

		id := callerID(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = NewRequestID()
		}
		ctx := context.WithValue(r.Context(), contextKey{}, id)
		r = r.WithContext(ctx)
		w.Header().Set(RequestIDHeader, id)

		if m.events != nil {
			m.events.LogHTTPStart(ctx, r, id, ip)
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		m.lastMicros.Store(elapsed.Microseconds())
		switch {
		case sw.status >= 500:
			m.serverErrors.Add(1)
		case sw.status >= 400:
			m.clientErrors.Add(1)
		}

		if m.events != nil {
			m.events.LogHTTPEnd(ctx, r, id, sw.status, elapsed.Milliseconds(), ip)
		}
	})
}

// callerID accepts a caller supplied id only if it is short and made of
// letters, digits, '-' and '_'.
func callerID(v string) string {
	if v == "" || len(v) > maxCallerIDLen {
		return ""
	}
	for _, c := range v {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return ""
		}
	}
	return v
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// NewRequestID returns a fresh id such as "req_3f2a...".
func NewRequestID() string {
	return "req_" + uuid.NewString()
}

// GetRequestID returns the id stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// RequestID reads the id assigned to r by Middleware.
func RequestID(r *http.Request) string {
	return GetRequestID(r.Context())
}

func (m *Middleware) GetMetrics() Metrics {
	return Metrics{
		TotalRequests:      m.total.Load(),
		InFlight:           m.inFlight.Load(),
		ClientErrors:       m.clientErrors.Load(),
		ServerErrors:       m.serverErrors.Load(),
		LastDurationMicros: m.lastMicros.Load(),
	}
}
