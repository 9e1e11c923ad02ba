// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/amoodyplace/moodyplace-go/internal/render"
)

// windowCounter tracks request counts within a fixed window.
type windowCounter struct {
	count   int
	resetAt time.Time
}

// windowCache counts requests per key in fixed windows. When a window
// expires the counter resets to zero; there is no sliding behavior.
type windowCache[K comparable] struct {
	mu      sync.Mutex
	entries map[K]*windowCounter
	limit   int
	window  time.Duration
	now     func() time.Time
}

func newWindowCache[K comparable](limit int, window time.Duration) *windowCache[K] {
	return &windowCache[K]{
		entries: make(map[K]*windowCounter),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// take consumes one request for the key. It reports whether the request
// is allowed, how many remain in the window, and when the window resets.
func (c *windowCache[K]) take(key K) (allowed bool, remaining int, resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	entry, exists := c.entries[key]
	if !exists || now.After(entry.resetAt) {
		entry = &windowCounter{resetAt: now.Add(c.window)}
		c.entries[key] = entry
	}

	if entry.count >= c.limit {
		return false, 0, entry.resetAt
	}
	entry.count++
	return true, c.limit - entry.count, entry.resetAt
}

// clearExpired drops windows that have already reset. Called inline when
// the map grows past maxSize to bound memory on IP churn.
func (c *windowCache[K]) clearExpired(maxSize int) {
	if len(c.entries) <= maxSize {
		return
	}
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.resetAt) {
			delete(c.entries, key)
		}
	}
}

// RateLimiter applies a fixed-window per-IP request limit and answers
// over-limit requests with a 429 envelope.
type RateLimiter struct {
	cache    *windowCache[string]
	renderer *render.Renderer
	name     string
}

// NewRateLimiter creates a RateLimiter allowing limit requests per
// window from each client IP. The name labels log lines so overlapping
// limiters (general, API, auth) can be told apart.
func NewRateLimiter(renderer *render.Renderer, name string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		cache:    newWindowCache[string](limit, window),
		renderer: renderer,
		name:     name,
	}
}

// Middleware returns the rate limiting middleware.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)

			rl.cache.mu.Lock()
			rl.cache.clearExpired(10000)
			rl.cache.mu.Unlock()

			allowed, remaining, resetAt := rl.cache.take(ip)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.cache.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !allowed {
				slog.Warn("rate limit exceeded", "limiter", rl.name, "ip", ip, "path", r.URL.Path)
				w.Header().Set("Retry-After", strconv.Itoa(int(time.Until(resetAt).Seconds())+1))
				rl.renderer.Error(w, http.StatusTooManyRequests, render.CodeRateLimitExceeded,
					"Too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// limiterCache is a generic token bucket cache with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the rate limiter for a specific key, creating one if needed.
func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// BurstLimiter smooths short request bursts per IP with a token bucket.
// It complements the fixed-window limiters on the login endpoints, where
// a burst of requests inside an otherwise unused window would still
// hammer bcrypt.
type BurstLimiter struct {
	cache    *limiterCache[string]
	renderer *render.Renderer
}

// NewBurstLimiter creates a BurstLimiter allowing rps sustained requests
// per second with the given burst per client IP.
func NewBurstLimiter(renderer *render.Renderer, rps float64, burst int) *BurstLimiter {
	return &BurstLimiter{
		cache:    newLimiterCache[string](rps, burst),
		renderer: renderer,
	}
}

// Middleware returns the burst limiting middleware.
func (bl *BurstLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if !bl.cache.get(ip).Allow() {
				slog.Warn("burst limit exceeded", "ip", ip, "path", r.URL.Path)
				bl.renderer.Error(w, http.StatusTooManyRequests, render.CodeRateLimitExceeded,
					"Too many requests, please slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the client IP from the request, preferring proxy
// headers over the socket address.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	// X-Forwarded-For can contain multiple IPs; take the first one
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if idx := strings.Index(ip, ","); idx != -1 {
			ip = ip[:idx]
		}
		return strings.TrimSpace(ip)
	}
	return r.RemoteAddr
}
