// Package ratelimit caps how many writes one client may issue per minute.
package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

const (
	window  = time.Minute
	idleTTL = 10 * time.Minute
)

// Limiter keeps a fixed one-minute window per client key.
type Limiter struct {
	limit int
	sweep time.Duration
	now   func() time.Time

	mu      sync.Mutex
	windows map[string]*clientWindow

	allowed  atomic.Int64
	rejected atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

type clientWindow struct {
	opened   time.Time
	lastSeen time.Time
	used     int
}

// Config holds rate limiter configuration
type Config struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
}

// Decision is the outcome of one Take call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// NewLimiter creates a limiter and starts its sweeper. Call Stop to release it.
func NewLimiter(config Config) *Limiter {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = 60
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	l := &Limiter{
		limit:   config.RequestsPerMinute,
		sweep:   config.CleanupInterval,
		now:     time.Now,
		windows: make(map[string]*clientWindow),
		stop:    make(chan struct{}),
	}
	go l.sweepLoop()
	return l
}

// Take spends one request from key's window.
func (l *Limiter) Take(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.opened) >= window {
		w = &clientWindow{opened: now}
		l.windows[key] = w
	}
	w.lastSeen = now

	d := Decision{Limit: l.limit}
	if w.used >= l.limit {
		l.rejected.Add(1)
		d.RetryAfter = w.opened.Add(window).Sub(now)
		return d
	}

	w.used++
	l.allowed.Add(1)
	d.Allowed = true
	d.Remaining = l.limit - w.used
	return d
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(l.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle()
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops clients not seen for idleTTL.
func (l *Limiter) evictIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idleTTL)
	for key, w := range l.windows {
		if w.lastSeen.Before(cutoff) {
			delete(l.windows, key)
		}
	}
}

// Clients returns how many client windows are tracked.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// Stop ends the sweeper. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Metrics are the counters exported on /metrics.
type Metrics struct {
	Allowed  int64
	Rejected int64
	Clients  int64
}

func (l *Limiter) GetMetrics() Metrics {
	return Metrics{
		Allowed:  l.allowed.Load(),
		Rejected: l.rejected.Load(),
		Clients:  int64(l.Clients()),
	}
}

// WritesOnly selects POST, PUT, PATCH and DELETE.
func WritesOnly(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// Middleware limits requests matched by applies, keyed by clientKey. A nil
// applies limits everything. onLimit writes the rejection body.
func (l *Limiter) Middleware(clientKey func(*http.Request) string, applies func(*http.Request) bool, onLimit func(http.ResponseWriter, *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if applies != nil && !applies(r) {
				next.ServeHTTP(w, r)
				return
			}

			d := l.Take(clientKey(r))
			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if d.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Retry-After", strconv.Itoa(retrySeconds(d.RetryAfter)))
			if onLimit != nil {
				onLimit(w, r)
				return
			}
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		})
	}
}

// retrySeconds rounds up so clients never retry inside the window.
func retrySeconds(d time.Duration) int {
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		s = 1
	}
	return s
}
