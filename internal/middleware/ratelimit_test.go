package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(limiter *rateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/send-message", limiter.handle, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.POST("/tts", limiter.handle, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return engine
}

func hit(router *gin.Engine, path string) int {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = "203.0.113.7:51000"
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp.Code
}

func TestRateLimitBlocksSecondHitInWindow(t *testing.T) {
	current := time.Unix(1700000000, 0)
	limiter := &rateLimiter{
		window: 3 * time.Second,
		last:   make(map[string]time.Time),
		now:    func() time.Time { return current },
	}
	router := newLimitedRouter(limiter)

	require.Equal(t, http.StatusOK, hit(router, "/send-message"))
	require.Equal(t, http.StatusTooManyRequests, hit(router, "/send-message"))

	current = current.Add(3 * time.Second)
	require.Equal(t, http.StatusOK, hit(router, "/send-message"))
}

func TestRateLimitKeysByPath(t *testing.T) {
	current := time.Unix(1700000000, 0)
	limiter := &rateLimiter{
		window: time.Minute,
		last:   make(map[string]time.Time),
		now:    func() time.Time { return current },
	}
	router := newLimitedRouter(limiter)

	require.Equal(t, http.StatusOK, hit(router, "/send-message"))
	require.Equal(t, http.StatusOK, hit(router, "/tts"), "different path must have its own window")
}

func TestRateLimitZeroWindowPassesThrough(t *testing.T) {
	limiter := &rateLimiter{window: 0, last: make(map[string]time.Time), now: time.Now}
	router := newLimitedRouter(limiter)

	require.Equal(t, http.StatusOK, hit(router, "/send-message"))
	require.Equal(t, http.StatusOK, hit(router, "/send-message"))
}
