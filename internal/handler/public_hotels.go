package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayloop/hotel-booking/internal/repository"
)

// PublicHandler exposes the unauthenticated browse endpoints: hotel listing,
// name search and hotel detail. These routes sit behind the response cache
// and the rate limiter.
type PublicHandler struct {
	Hotels *repository.HotelRepo
}

func NewPublicHandler(hotels *repository.HotelRepo) *PublicHandler {
	if hotels == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Hotels: hotels}
}

// ListHotels handles GET /api/hotels?name= and returns all hotels, filtered
// by an optional name fragment.
func (h *PublicHandler) ListHotels(c echo.Context) error {
	items, err := h.Hotels.Search(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load hotels"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetHotel handles GET /api/hotels/:id.
func (h *PublicHandler) GetHotel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid hotel id"})
	}
	hotel, err := h.Hotels.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load hotel"})
	}
	return c.JSON(http.StatusOK, hotel)
}
