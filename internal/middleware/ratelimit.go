package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/taskhive/internal/errors"
	"golang.org/x/time/rate"
)

// visitor is one IP's allowance for the current window. The limiter never
// refills; a new one is issued when the window ends.
type visitor struct {
	limiter     *rate.Limiter
	windowStart time.Time
}

// IPRateLimiter allows each client IP at most max requests per fixed window.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	max      int
	window   time.Duration
	now      func() time.Time
}

// NewIPRateLimiter creates a limiter allowing max requests per window per IP
func NewIPRateLimiter(max int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

// Allow reports whether ip may make another request now
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	v, ok := l.visitors[ip]
	if !ok {
		// A zero limit with burst max hands out exactly max tokens.
		v = &visitor{limiter: rate.NewLimiter(0, l.max), windowStart: now}
		l.visitors[ip] = v
	}

	return v.limiter.AllowN(now, 1)
}

// evict drops visitors whose window has ended.
func (l *IPRateLimiter) evict(now time.Time) {
	for ip, v := range l.visitors {
		if now.Sub(v.windowStart) >= l.window {
			delete(l.visitors, ip)
		}
	}
}

// RateLimit rejects clients that exceed the limiter with 429
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			apierrors.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
