package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"pronet/config"
	"pronet/utils"
)

const bucketIdleTTL = 5 * time.Minute

// ipBucket pairs a client's token bucket with the time its entry may be
// dropped when the client goes quiet.
type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	buckets   = map[string]*ipBucket{}
	bucketsMu sync.Mutex
)

// RateLimitMiddleware throttles requests per client IP. RATE_LIMIT_PER_MINUTE
// sets the sustained rate; bursts of up to half that are tolerated so page
// loads that fan out several API calls do not trip the limit.
func RateLimitMiddleware() gin.HandlerFunc {
	cfg := config.Get()
	perMinute := max(cfg.RateLimitPerMinute, 1)
	limit := rate.Every(time.Minute / time.Duration(perMinute))
	burst := max(perMinute/2, 1)

	return func(ctx *gin.Context) {
		if !bucketFor(ctx.ClientIP(), limit, burst).Allow() {
			utils.Error(ctx, http.StatusTooManyRequests, 42901, "rate limit exceeded")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func bucketFor(ip string, limit rate.Limit, burst int) *rate.Limiter {
	bucketsMu.Lock()
	defer bucketsMu.Unlock()

	now := time.Now()
	for key, b := range buckets {
		if now.Sub(b.lastSeen) > bucketIdleTTL {
			delete(buckets, key)
		}
	}

	b, ok := buckets[ip]
	if !ok {
		b = &ipBucket{limiter: rate.NewLimiter(limit, burst)}
		buckets[ip] = b
	}
	b.lastSeen = now
	return b.limiter
}
