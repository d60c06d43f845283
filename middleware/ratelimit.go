package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"lawfirm-cms/helper"
)

const maxTrackedClients = 10000

// limiterCache hands out one token bucket per key.
type limiterCache struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache(rps float64, burst int) *limiterCache {
	return &limiterCache{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (lc *limiterCache) get(key string) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()
	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}
	// Crude bound on memory; forgetting buckets only loosens the limit.
	if len(lc.limiters) >= maxTrackedClients {
		lc.limiters = make(map[string]*rate.Limiter)
	}
	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

type IPRateLimiter struct {
	cache *limiterCache
	log   zerolog.Logger
}

func NewIPRateLimiter(rps float64, burst int, log zerolog.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		cache: newLimiterCache(rps, burst),
		log:   log,
	}
}

func (rl *IPRateLimiter) Middleware(h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.cache.get(ip).Allow() {
			rl.log.Warn().Str("ip", ip).Str("path", c.Request.URL.Path).Msg("public rate limit exceeded")
			h.SendError(c, "Too many requests. Please wait a moment and try again.", h.EmptyJsonMap(), http.StatusTooManyRequests, "rate_limit_exceeded")
			c.Abort()
			return
		}
		c.Next()
	}
}
