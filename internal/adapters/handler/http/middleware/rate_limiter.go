package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// RateLimiterMiddleware is a fixed window per client IP shared through redis.
func RateLimiterMiddleware(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		key := fmt.Sprintf("rate_limit:%s", clientIP)

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("redis error, rate limiter skipped")
			c.Next()
			return
		}

		if count == 1 {
			if err := rdb.Expire(c.Request.Context(), key, window).Err(); err != nil {
				log.Warn().Err(err).Msg("redis expire error, deleting key to avoid zombie")
				rdb.Del(c.Request.Context(), key)
				c.Next()
				return
			}
		}

		ttl, err := rdb.TTL(c.Request.Context(), key).Result()
		if err != nil || ttl < 0 {
			ttl = window
		}

		resetTime := time.Now().Add(ttl).Unix()
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", max(0, int64(limit)-count)))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime))

		if count > int64(limit) {
			tooMany(c, int(ttl.Seconds()))
			return
		}

		c.Next()
	}
}

// InMemoryRateLimiter is a token bucket per client IP for a companion running
// without redis. The bucket refills limit tokens per window.
func InMemoryRateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	limiters := newIPLimiters(limit, window)

	return func(c *gin.Context) {
		lim := limiters.get(c.ClientIP())
		allowed := lim.Allow()

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", max(0, int(lim.Tokens()))))

		if !allowed {
			retry := lim.Reserve()
			delay := retry.Delay()
			retry.Cancel()
			tooMany(c, int(delay.Seconds())+1)
			return
		}

		c.Next()
	}
}

type ipLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// ipLimiters holds one bucket per client IP. A bucket idle for a full window
// has refilled, so it is dropped and recreated on the next request.
type ipLimiters struct {
	mu        sync.Mutex
	entries   map[string]*ipLimiter
	every     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiters(limit int, window time.Duration) *ipLimiters {
	return &ipLimiters{
		entries: make(map[string]*ipLimiter),
		every:   rate.Every(window / time.Duration(max(limit, 1))),
		burst:   limit,
		idle:    window,
		now:     time.Now,
	}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweepLocked(now)
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &ipLimiter{lim: rate.NewLimiter(l.every, l.burst)}
		l.entries[ip] = e
	}
	e.lastSeen = now
	return e.lim
}

func (l *ipLimiters) sweepLocked(now time.Time) {
	for ip, e := range l.entries {
		if now.Sub(e.lastSeen) >= l.idle {
			delete(l.entries, ip)
		}
	}
	l.lastSweep = now
}

func (l *ipLimiters) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func tooMany(c *gin.Context, retryIn int) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"status":     "error",
		"message":    "Too many requests. Slow down!",
		"retry_in_s": retryIn,
	})
}
