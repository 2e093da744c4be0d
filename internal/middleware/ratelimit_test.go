package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestLimiter(max int, window time.Duration) (*IPRateLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter := NewIPRateLimiter(max, window)
	limiter.now = clock.Now
	return limiter, clock
}

func TestIPRateLimiter_CapsEachWindow(t *testing.T) {
	limiter, clock := newTestLimiter(100, 15*time.Minute)

	// One request per second for a whole window never gets more than max through.
	allowed := 0
	for i := 0; i < int((15 * time.Minute).Seconds()); i++ {
		if limiter.Allow("10.0.0.1") {
			allowed++
		}
		clock.now = clock.now.Add(time.Second)
	}
	assert.Equal(t, 100, allowed)

	// The window has ended: a fresh allowance.
	assert.True(t, limiter.Allow("10.0.0.1"))
}

func TestIPRateLimiter_PerIP(t *testing.T) {
	limiter, _ := newTestLimiter(2, time.Minute)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestRateLimit_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter, clock := newTestLimiter(100, 15*time.Minute)
	r := gin.New()
	r.Use(RateLimit(limiter))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 100; i++ {
		require.Equal(t, http.StatusOK, get().Code, "request %d", i+1)
		clock.now = clock.now.Add(5 * time.Second)
	}

	w := get()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests, please try again later.")

	clock.now = clock.now.Add(15 * time.Minute)
	assert.Equal(t, http.StatusOK, get().Code)
}
