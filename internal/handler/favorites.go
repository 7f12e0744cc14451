package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayloop/hotel-booking/internal/repository"
)

// FavoritesHandler implements the per-user favorites set. Responses carry
// the favorited hotel records, not bare relation rows.
type FavoritesHandler struct {
	Favorites *repository.FavoriteRepo
	Hotels    *repository.HotelRepo
}

func NewFavoritesHandler(favorites *repository.FavoriteRepo, hotels *repository.HotelRepo) *FavoritesHandler {
	if favorites == nil || hotels == nil {
		panic("nil repository passed to NewFavoritesHandler")
	}
	return &FavoritesHandler{Favorites: favorites, Hotels: hotels}
}

// List handles GET /api/favorites.
func (h *FavoritesHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	items, err := h.Favorites.ListHotels(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load favorites"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Add handles POST /api/favorites with body {"hotelId": n}.
func (h *FavoritesHandler) Add(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var body struct {
		HotelID uint64 `json:"hotelId"`
	}
	if err := c.Bind(&body); err != nil || body.HotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "hotelId is required"})
	}

	ctx := c.Request().Context()
	hotel, err := h.Hotels.GetByID(ctx, body.HotelID)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
	}
	if err := h.Favorites.Add(ctx, userID, body.HotelID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "hotel already favorited"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to add favorite"})
	}
	return c.JSON(http.StatusCreated, hotel)
}

// Remove handles DELETE /api/favorites/:hotelId.
func (h *FavoritesHandler) Remove(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	hotelID, err := pathID(c, "hotelId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid hotel id"})
	}
	if err := h.Favorites.Remove(c.Request().Context(), userID, hotelID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "favorite not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to remove favorite"})
	}
	return c.NoContent(http.StatusNoContent)
}
