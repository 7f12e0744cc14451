package router

import (
	"github.com/labstack/echo/v4"

	"github.com/stayloop/hotel-booking/internal/handler"
	"github.com/stayloop/hotel-booking/internal/middleware"
	"github.com/stayloop/hotel-booking/pkg/model"
)

// RegisterUser registers user-scoped endpoints under /api. All routes
// require a valid JWT and the user role: booking creation, booking history,
// cancellation and the favorites set.
func RegisterUser(e *echo.Echo, b *handler.BookingHandler, f *handler.FavoritesHandler, jwtSecret string) {
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser),
	)

	g.POST("/bookings", b.CreateBooking)
	g.GET("/bookings", b.ListMyBookings)
	g.POST("/bookings/:id/cancel", b.CancelBooking)

	g.GET("/favorites", f.List)
	g.POST("/favorites", f.Add)
	g.DELETE("/favorites/:hotelId", f.Remove)
}
