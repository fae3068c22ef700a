package api

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"thumb-studio/metrics"
)

// requestLogger logs one line per request and records HTTP metrics under
// the matched route pattern.
func requestLogger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			elapsed := time.Since(start)
			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

			l.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Dur("elapsed", elapsed).
				Msg("request")
		})
	}
}

type bucket struct {
	count int
	until time.Time
}

// limiter is a fixed-window counter per client. Expired windows are swept
// at most once per window so idle clients do not accumulate.
type limiter struct {
	mu        sync.Mutex
	limit     int
	per       time.Duration
	buckets   map[string]*bucket
	nextSweep time.Time
}

func newLimiter(limit int, per time.Duration) *limiter {
	return &limiter{limit: limit, per: per, buckets: make(map[string]*bucket)}
}

// allow counts one request from key. When the window is exhausted it
// returns false and the time until the window resets.
func (l *limiter) allow(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextSweep) {
		for k, b := range l.buckets {
			if now.After(b.until) {
				delete(l.buckets, k)
			}
		}
		l.nextSweep = now.Add(l.per)
	}

	b, ok := l.buckets[key]
	if !ok || now.After(b.until) {
		b = &bucket{until: now.Add(l.per)}
		l.buckets[key] = b
	}
	if b.count >= l.limit {
		return false, b.until.Sub(now)
	}
	b.count++
	return true, 0
}

// rateLimit allows limit requests per client IP in each window of length
// per. A non-positive limit disables it.
func rateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(limit, per)
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := l.allow(clientIP(r), time.Now())
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys on RemoteAddr, which middleware.RealIP has already resolved
// from the proxy headers. Forwarding headers are not consulted again here.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
