// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements a lightweight, in-memory rate limiter with
// per-origin buckets and opportunistic garbage collection. Limits are
// declared as quotas ("n events per window") and backed by token buckets
// from golang.org/x/time/rate; a limiter may carry several quotas at once
// (e.g. an hourly and a daily cap) and admits a request only when every
// quota has capacity.
//
// Notes:
//   - This limiter is process-local. For horizontally scaled deployments,
//     prefer a distributed limiter (e.g., Redis-backed) to enforce global
//     limits.
//   - The limiter is intended for edge-level abuse control on the contact
//     form and debug endpoints; it is not an authorization mechanism.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Quota expresses "Events requests per Window" as a refill rate plus burst.
type Quota struct {
	Events int
	Window time.Duration
}

// PerMinute returns a quota of n requests per minute.
func PerMinute(n int) Quota { return Quota{Events: n, Window: time.Minute} }

// PerHour returns a quota of n requests per hour.
func PerHour(n int) Quota { return Quota{Events: n, Window: time.Hour} }

// PerDay returns a quota of n requests per day.
func PerDay(n int) Quota { return Quota{Events: n, Window: 24 * time.Hour} }

// limit converts the quota to a token refill rate.
func (q Quota) limit() rate.Limit {
	if q.Events <= 0 || q.Window <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(q.Events) / q.Window.Seconds())
}

// keyFunc selects the identity used to key a rate-limit bucket.
//
// Implementations should return a stable string for the duration of a
// request. The returned key is used to look up the corresponding buckets.
type keyFunc func(*gin.Context) string

// KeyByClientIP returns a keyFunc that buckets requests by the caller's
// network address. Keys are prefixed to leave room for other namespaces.
func KeyByClientIP() keyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

// visitor holds one limiter per quota and the last time the key was seen.
// Used to opportunistically evict idle buckets.
type visitor struct {
	limiters []*rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces one or more quotas per origin key.
//
// Buckets are created on demand and stored in an internal map guarded by a
// mutex. Idle buckets are evicted after a TTL via opportunistic cleanup
// during lookups to keep memory usage bounded.
//
// This type is safe for concurrent use.
type RateLimiter struct {
	quotas []Quota
	keyFn  keyFunc

	mu       sync.Mutex
	visitors map[string]*visitor

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter constructs a RateLimiter that admits a request only when
// every quota has capacity for the key produced by keyFn. A quota with
// Events <= 0 admits everything.
func NewRateLimiter(keyFn keyFunc, quotas ...Quota) *RateLimiter {
	ttl := 10 * time.Minute
	for _, q := range quotas {
		// Idle entries must outlive the longest window or long-window
		// quotas would reset on eviction.
		if q.Window > ttl {
			ttl = q.Window
		}
	}
	return &RateLimiter{
		quotas:   quotas,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		ttl:      ttl,
	}
}

// getVisitor returns (and updates) the buckets for key, creating them if
// absent. It also performs opportunistic GC of idle entries after ~5000
// lookups.
//
// IMPORTANT: Run GC *before* touching the requested visitor so an "old"
// bucket can be evicted even when it's the one being fetched.
func (rl *RateLimiter) getVisitor(key string) []*rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	rl.cleanupN++
	if rl.cleanupN >= 5000 {
		for k, vv := range rl.visitors {
			if now.Sub(vv.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.cleanupN = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		lims := v.limiters
		rl.mu.Unlock()
		return lims
	}

	lims := make([]*rate.Limiter, 0, len(rl.quotas))
	for _, q := range rl.quotas {
		burst := q.Events
		if burst <= 0 {
			burst = 1
		}
		lims = append(lims, rate.NewLimiter(q.limit(), burst))
	}
	rl.visitors[key] = &visitor{limiters: lims, lastSeen: now}
	rl.mu.Unlock()
	return lims
}

// allow consumes one token from every bucket, or none at all: when a later
// bucket denies, tokens already taken from earlier buckets are returned so
// a rejected request does not eat into the other windows.
func (rl *RateLimiter) allow(lims []*rate.Limiter) bool {
	now := time.Now()
	taken := make([]*rate.Reservation, 0, len(lims))
	for _, lim := range lims {
		res := lim.ReserveN(now, 1)
		if !res.OK() || res.DelayFrom(now) > 0 {
			res.CancelAt(now)
			for _, r := range taken {
				r.CancelAt(now)
			}
			return false
		}
		taken = append(taken, res)
	}
	return true
}

// Handler returns a Gin middleware that enforces the limiter's quotas.
//
// On rejection it emits:
//
//	HTTP/1.1 429 Too Many Requests
//	{ "success": false, "error": "too many requests" }
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.keyFn(c)
		lims := rl.getVisitor(key)

		if rl.allow(lims) {
			c.Next()
			return
		}

		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"error":   "too many requests",
		})
	}
}
