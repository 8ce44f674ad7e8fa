package middleware

import (
	"net/http"
	"sync"

	"coupon-service/internal/handler/httperr"
	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter shields the issuance endpoints from request floods during a
// campaign spike. One limiter per client IP, shared burst settings.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(cfg config.ServerConfig) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(cfg.IssueRateLimit),
		burst:    cfg.IssueRateBurst,
	}
}

func (r *RateLimiter) limiterFor(key string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.limiters[key]; ok {
		return l
	}
	l := rate.NewLimiter(r.limit, r.burst)
	r.limiters[key] = l
	return l
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	// limit of 0 means disabled
	if r.limit == 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if !r.limiterFor(c.ClientIP()).Allow() {
			httperr.AbortWithError(c, http.StatusTooManyRequests,
				errs.New("rate limit exceeded"), "Too many requests", nil)
			return
		}
		c.Next()
	}
}
