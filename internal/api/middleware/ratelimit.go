package middleware

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimit allows perMinute requests per client IP. A nil limiter or a
// non-positive limit disables it; limiter errors fail open.
func RateLimit(logger *slog.Logger, limiter Limiter, perMinute int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil || perMinute <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			ok, n, err := limiter.Allow(r.Context(), "rl:"+ip, perMinute, time.Minute)
			if err != nil {
				logger.Warn("rate limiter unavailable", "ip", ip, "error", err.Error())
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				logger.Warn("rate limit exceeded", "ip", ip, "count", n, "method", r.Method, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = io.WriteString(w, `{"error":"too many requests"}`)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
