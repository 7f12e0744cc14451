package router

import (
	"github.com/labstack/echo/v4"

	"github.com/stayloop/hotel-booking/internal/handler"
	"github.com/stayloop/hotel-booking/internal/middleware"
	"github.com/stayloop/hotel-booking/pkg/model"
)

// RegisterOperator registers operator-scoped endpoints under /api. All
// routes require a valid JWT and the operator role: hotel management plus
// booking oversight and advancement on the operator's own hotels.
func RegisterOperator(e *echo.Echo, o *handler.OperatorHandler, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOperator),
	)

	// ---- Hotels ----
	g.POST("/hotels", o.CreateHotel)
	g.GET("/hotels/mine", o.ListMyHotels)
	g.PUT("/hotels/:id", o.UpdateHotel)
	g.DELETE("/hotels/:id", o.DeleteHotel)

	// ---- Bookings ----
	g.GET("/bookings/operator", b.ListOperatorBookings)
	g.POST("/bookings/:id/confirm", b.ConfirmBooking)
	g.POST("/bookings/:id/complete", b.CompleteBooking)
}
