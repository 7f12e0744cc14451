package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stayloop/hotel-booking/internal/repository"
	"github.com/stayloop/hotel-booking/pkg/model"
)

// OperatorHandler implements hotel management for operators. Every mutation
// is scoped to hotels the authenticated operator owns; the repository
// enforces ownership a second time so a spoofed client changes nothing.
type OperatorHandler struct {
	Hotels *repository.HotelRepo
}

func NewOperatorHandler(hotels *repository.HotelRepo) *OperatorHandler {
	if hotels == nil {
		panic("nil repository passed to NewOperatorHandler")
	}
	return &OperatorHandler{Hotels: hotels}
}

type hotelReq struct {
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	AvailableRooms int     `json:"availableRooms"`
}

func (r *hotelReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	switch {
	case r.Name == "":
		return "name is required"
	case r.Address == "":
		return "address is required"
	case r.Price <= 0:
		return "price must be positive"
	case r.AvailableRooms < 0:
		return "availableRooms must not be negative"
	}
	return ""
}

// CreateHotel handles POST /api/hotels.
func (h *OperatorHandler) CreateHotel(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}
	hotel := &model.Hotel{
		OperatorID:     operatorID,
		Name:           req.Name,
		Address:        req.Address,
		Description:    strings.TrimSpace(req.Description),
		Price:          req.Price,
		AvailableRooms: req.AvailableRooms,
	}
	if err := h.Hotels.Create(c.Request().Context(), hotel); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create hotel"})
	}
	return c.JSON(http.StatusCreated, hotel)
}

// UpdateHotel handles PUT /api/hotels/:id. The full mutable record is
// replaced; the row must belong to the caller.
func (h *OperatorHandler) UpdateHotel(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid hotel id"})
	}
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx := c.Request().Context()
	if _, err := h.Hotels.GetByIDAndOperator(ctx, id, operatorID); err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
	}

	hotel := &model.Hotel{
		ID:             id,
		Name:           req.Name,
		Address:        req.Address,
		Description:    strings.TrimSpace(req.Description),
		Price:          req.Price,
		AvailableRooms: req.AvailableRooms,
	}
	if err := h.Hotels.Update(ctx, hotel, operatorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update failed"})
	}
	updated, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteHotel handles DELETE /api/hotels/:id. A hotel with bookings still in
// a non-terminal status cannot be removed.
func (h *OperatorHandler) DeleteHotel(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid hotel id"})
	}
	if err := h.Hotels.DeleteByIDAndOperator(c.Request().Context(), id, operatorID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hotel not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"message": "hotel has active bookings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMyHotels handles GET /api/hotels/mine, the operator dashboard listing.
func (h *OperatorHandler) ListMyHotels(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	items, err := h.Hotels.ListByOperator(c.Request().Context(), operatorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load hotels"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
