package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayloop/hotel-booking/internal/repository"
	"github.com/stayloop/hotel-booking/pkg/model"
)

// ListOperatorBookings handles GET /api/bookings/operator and returns every
// booking on the operator's hotels, including the booking user's email.
func (h *BookingHandler) ListOperatorBookings(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	items, err := h.Bookings.ListByOperator(c.Request().Context(), operatorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ConfirmBooking handles POST /api/bookings/:id/confirm. Pending bookings on
// the operator's own hotels only.
func (h *BookingHandler) ConfirmBooking(c echo.Context) error {
	return h.advance(c, model.ActionConfirm)
}

// CompleteBooking handles POST /api/bookings/:id/complete. Confirmed
// bookings on the operator's own hotels only.
func (h *BookingHandler) CompleteBooking(c echo.Context) error {
	return h.advance(c, model.ActionComplete)
}

// advance applies an operator-driven status transition. The permitted-action
// table decides legality up front, and the guarded UPDATE re-checks the
// status so a concurrent transition surfaces as a conflict rather than a
// silent overwrite.
func (h *BookingHandler) advance(c echo.Context, action model.BookingAction) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
	}

	ctx := c.Request().Context()
	view, hotelOperatorID, err := h.Bookings.GetView(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
	}
	if hotelOperatorID != operatorID {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	if !model.CanTransition(view.Status, getRole(c), action) {
		return c.JSON(http.StatusConflict, echo.Map{"message": "booking cannot be " + string(action.Target()) + " in status " + string(view.Status)})
	}

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Bookings.UpdateStatusTx(ctx, tx, id, view.Status, action.Target()); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"message": "booking status changed concurrently"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to update booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to commit transaction"})
	}
	committed = true

	view.Status = action.Target()
	h.publish(&view.Booking, view.HotelName)
	return c.JSON(http.StatusOK, view)
}
