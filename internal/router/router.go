// Package router registers the HTTP routes of the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/stayloop/hotel-booking/internal/config"
	"github.com/stayloop/hotel-booking/internal/handler"
	"github.com/stayloop/hotel-booking/internal/middleware"
	"github.com/stayloop/hotel-booking/internal/observability"
)

// RegisterRoutes registers routes that carry no business logic: the health
// check for load balancers and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo, reg *prometheus.Registry) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(observability.MetricsHandler(reg)))
}

// RegisterAuth registers authentication routes. Register, login and refresh
// live under /api/auth without middleware; logout, change-password and me
// require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	auth := e.Group("/api/auth", middleware.JWTAuth(jwtSecret))
	auth.POST("/logout", a.Logout)
	auth.POST("/change-password", a.ChangePassword)
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints. They sit
// behind the Redis response cache and the rate limiter so anonymous listing
// traffic never reaches MySQL twice for the same query.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e.GET("/api/hotels", p.ListHotels, limit, cache)
	e.GET("/api/hotels/:id", p.GetHotel, limit, cache)
}
