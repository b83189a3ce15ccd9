package middleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitMessage is returned to clients that exceed their allowance.
const RateLimitMessage = "Too many requests from this IP, please try again later."

// RateLimiter enforces a fixed-window budget of requests per IP. Each client
// gets a fresh golang.org/x/time/rate bucket holding the full budget when its
// window opens. The bucket refills one token per window, so no token is
// regained before the window closes and the bucket is replaced.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	burst    int
	window   time.Duration
	now      func() time.Time
}

type visitor struct {
	limiter     *rate.Limiter
	windowStart time.Time
}

// NewRateLimiter allows requests per window for each IP.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		burst:    requests,
		window:   window,
		now:      time.Now,
	}
}

// Allow reports whether a request from ip fits in its current window and,
// when it does not, how long until the window resets.
func (rl *RateLimiter) Allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok || now.Sub(v.windowStart) >= rl.window {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(rl.window), rl.burst), windowStart: now}
		rl.visitors[ip] = v
	}
	if v.limiter.AllowN(now, 1) {
		return true, 0
	}
	return false, v.windowStart.Add(rl.window).Sub(now)
}

// Len returns the number of tracked clients.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// Prune drops clients whose window has closed. Their next request opens a
// fresh window anyway.
func (rl *RateLimiter) Prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	removed := 0
	for ip, v := range rl.visitors {
		if now.Sub(v.windowStart) >= rl.window {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

// StartCleanup prunes idle clients every interval until ctx is cancelled.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Prune()
		}
	}
}

// Middleware rejects requests over the limit with 429 and a JSON error body.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok, retryAfter := rl.Allow(clientIP(r)); !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			writeJSONError(w, http.StatusTooManyRequests, RateLimitMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the request's remote host. chi's RealIP middleware has
// already rewritten RemoteAddr from proxy headers when it runs first.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
