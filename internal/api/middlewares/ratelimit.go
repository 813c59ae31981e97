package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"newsblog/internal/api/models"
)

const (
	visitorTTL    = 10 * time.Minute
	sweepInterval = time.Minute
)

// RateLimiter keeps one token bucket per client key
type RateLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	visitors map[string]*visitor
	now      func() time.Time

	lastSweep time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per client with the given burst
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		ttl:      visitorTTL,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Allow consumes one token for key. Idle visitors are dropped at most once
// per sweepInterval.
func (rl *RateLimiter) Allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	v := rl.visitors[key]
	if v == nil {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	if now.Sub(rl.lastSweep) >= sweepInterval {
		rl.sweep(now)
	}

	return v.limiter.AllowN(now, 1)
}

// sweep drops visitors idle for longer than ttl. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.visitors, k)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// RateLimit middleware rejects clients that exceed their bucket
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeRateLimited,
					Message: "Rate limit exceeded. Please try again later.",
				},
				Timestamp: time.Now().Unix(),
				RequestID: c.GetString(ContextRequestID),
			})
			return
		}

		c.Next()
	}
}
