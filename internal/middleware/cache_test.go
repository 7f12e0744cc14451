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
	"github.com/stretchr/testify/require"

	"github.com/stayloop/hotel-booking/internal/config"
	"github.com/stayloop/hotel-booking/internal/middleware"
)

func cacheTestConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		Prefix:       "cache-test",
		MaxBodyBytes: 1 << 20,
	}
}

func newMiniRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisCache_HitOnSecondRequest(t *testing.T) {
	rdb := newMiniRedis(t)

	hits := 0
	e := echo.New()
	e.GET("/api/hotels", func(c echo.Context) error {
		hits++
		return c.JSON(http.StatusOK, echo.Map{"items": []string{"one"}})
	}, middleware.NewRedisCache(cacheTestConfig(), rdb))

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/hotels", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, 1, hits)

	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/hotels", nil))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, 1, hits, "handler must not run on a cache hit")
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestRedisCache_QueryIsPartOfTheKey(t *testing.T) {
	rdb := newMiniRedis(t)

	e := echo.New()
	e.GET("/api/hotels", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"name": c.QueryParam("name")})
	}, middleware.NewRedisCache(cacheTestConfig(), rdb))

	recA := httptest.NewRecorder()
	e.ServeHTTP(recA, httptest.NewRequest(http.MethodGet, "/api/hotels?name=ritz", nil))
	recB := httptest.NewRecorder()
	e.ServeHTTP(recB, httptest.NewRequest(http.MethodGet, "/api/hotels?name=plaza", nil))

	assert.Equal(t, "MISS", recB.Header().Get("X-Cache"), "different query must not hit the other entry")
	assert.NotEqual(t, recA.Body.String(), recB.Body.String())
}

func TestRedisCache_ErrorResponsesNotCached(t *testing.T) {
	rdb := newMiniRedis(t)

	hits := 0
	e := echo.New()
	e.GET("/api/hotels/:id", func(c echo.Context) error {
		hits++
		return c.JSON(http.StatusNotFound, echo.Map{"message": "hotel not found"})
	}, middleware.NewRedisCache(cacheTestConfig(), rdb))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hotels/9", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
	assert.Equal(t, 2, hits, "404s must reach the handler every time")
}

func TestRedisCache_DisabledPassesThrough(t *testing.T) {
	cfg := cacheTestConfig()
	cfg.Enabled = false

	hits := 0
	e := echo.New()
	e.GET("/api/hotels", func(c echo.Context) error {
		hits++
		return c.String(http.StatusOK, "ok")
	}, middleware.NewRedisCache(cfg, newMiniRedis(t)))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hotels", nil))
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, hits)
}
