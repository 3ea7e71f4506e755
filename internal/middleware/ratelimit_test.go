package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_PerIP(t *testing.T) {
	l := NewIPRateLimiter(0.001, 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "buckets are per client")
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	r := gin.New()
	r.POST("/login", NewIPRateLimiter(0.001, 1).Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 2)
	for i := range codes {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestIPRateLimiter_SweepsIdleBucketsPeriodically(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC))
	l := NewIPRateLimiter(0.001, 1)
	l.clock = clock

	l.Allow("10.0.0.1")
	clock.Advance(30 * time.Second)
	l.Allow("10.0.0.2")

	clock.Advance(limiterIdleTTL - 20*time.Second)
	l.Allow("10.0.0.3")
	assert.NotContains(t, l.visitors, "10.0.0.1")
	assert.Contains(t, l.visitors, "10.0.0.2")

	// .2 is now idle past the TTL but the last sweep is too recent
	clock.Advance(30 * time.Second)
	l.Allow("10.0.0.4")
	assert.Contains(t, l.visitors, "10.0.0.2")
	assert.Len(t, l.visitors, 3)

	clock.Advance(30 * time.Second)
	l.Allow("10.0.0.5")
	assert.NotContains(t, l.visitors, "10.0.0.2")
	assert.Len(t, l.visitors, 3)
}

func TestIPRateLimiter_RefillsOnClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewIPRateLimiter(1, 1)
	l.clock = clock

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	clock.Advance(time.Second)
	assert.True(t, l.Allow("10.0.0.1"))
}
