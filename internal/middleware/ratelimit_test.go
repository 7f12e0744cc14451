package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/stayloop/hotel-booking/internal/config"
	"github.com/stayloop/hotel-booking/internal/middleware"
)

func rateLimitTestConfig(capacity int) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		Prefix:         "rl-test",
	}
}

func limitedApp(cfg config.RateLimitConfig, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.GET("/api/hotels", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, middleware.NewTokenBucket(cfg, rdb))
	return e
}

func hitOnce(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/hotels", nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucket_ExhaustsAndRejects(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	e := limitedApp(rateLimitTestConfig(3), rdb)

	for i := 0; i < 3; i++ {
		rec := hitOnce(e, "10.0.0.1")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := hitOnce(e, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestTokenBucket_BucketsAreLocalToClientIP(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	e := limitedApp(rateLimitTestConfig(1), rdb)

	assert.Equal(t, http.StatusOK, hitOnce(e, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hitOnce(e, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, hitOnce(e, "10.0.0.2").Code, "a second client starts with a full bucket")
}

func TestTokenBucket_FailsOpenWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	e := limitedApp(rateLimitTestConfig(1), rdb)

	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hitOnce(e, "10.0.0.1").Code)
	}
}

func TestTokenBucket_DisabledPassesThrough(t *testing.T) {
	cfg := rateLimitTestConfig(1)
	cfg.Enabled = false
	e := limitedApp(cfg, nil)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hitOnce(e, "10.0.0.1").Code)
	}
}
