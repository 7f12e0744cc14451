package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stayloop/hotel-booking/internal/observability"
	"github.com/stayloop/hotel-booking/internal/queue"
	"github.com/stayloop/hotel-booking/internal/repository"
	"github.com/stayloop/hotel-booking/internal/service"
	"github.com/stayloop/hotel-booking/pkg/model"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// BookingHandler implements the user-facing booking endpoints: creation,
// listing and cancellation. Status transitions run as guarded updates inside
// a transaction, so a stale client that still shows a "cancel" button cannot
// move a booking out of a terminal state.
type BookingHandler struct {
	Bookings  *repository.BookingRepo
	Hotels    *repository.HotelRepo
	Publisher *service.Publisher
	Log       zerolog.Logger
}

func NewBookingHandler(bookings *repository.BookingRepo, hotels *repository.HotelRepo, pub *service.Publisher, log zerolog.Logger) *BookingHandler {
	if bookings == nil || hotels == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Hotels: hotels, Publisher: pub, Log: log}
}

type createBookingReq struct {
	HotelID         uint64 `json:"hotelId" validate:"required"`
	CheckInDate     string `json:"checkInDate" validate:"required"`
	CheckOutDate    string `json:"checkOutDate" validate:"required"`
	GuestCount      int    `json:"guestCount" validate:"required,min=1"`
	SpecialRequests string `json:"specialRequests"`
}

// CreateBooking handles POST /api/bookings. The total price is computed here
// from the hotel's nightly rate and the stay length; one room is reserved in
// the same transaction that writes the booking.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "hotelId, checkInDate, checkOutDate and guestCount are required"})
	}
	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "checkInDate must be YYYY-MM-DD"})
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "checkOutDate must be YYYY-MM-DD"})
	}
	if !checkOut.After(checkIn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "checkOutDate must be after checkInDate"})
	}

	ctx := c.Request().Context()
	hotel, err := h.Hotels.GetByID(ctx, req.HotelID)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
	}

	booking := &model.Booking{
		Reference:       uuid.NewString(),
		UserID:          userID,
		HotelID:         hotel.ID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		GuestCount:      req.GuestCount,
		Status:          model.StatusPending,
		SpecialRequests: req.SpecialRequests,
	}
	booking.TotalPrice = hotel.Price * float64(booking.Nights())

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

	if err := h.Bookings.DecrementRoomsTx(ctx, tx, hotel.ID); err != nil {
		if err == repository.ErrNoRooms {
			return c.JSON(http.StatusConflict, echo.Map{"message": "no rooms available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to reserve room"})
	}
	if err := h.Bookings.CreateTx(ctx, tx, booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to create booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to commit transaction"})
	}
	committed = true

	h.publish(booking, hotel.Name)

	view := model.BookingView{Booking: *booking, HotelName: hotel.Name, HotelAddress: hotel.Address}
	return c.JSON(http.StatusCreated, view)
}

// ListMyBookings handles GET /api/bookings and returns the current user's
// booking history, newest first.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	items, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CancelBooking handles POST /api/bookings/:id/cancel. Only the booking's
// own user may cancel, and only while the booking is still pending; the
// reserved room goes back to the hotel's availability.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
	}

	ctx := c.Request().Context()
	view, _, err := h.Bookings.GetView(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
	}
	if view.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	if !model.CanTransition(view.Status, getRole(c), model.ActionCancel) {
		return c.JSON(http.StatusConflict, echo.Map{"message": "booking cannot be cancelled in status " + string(view.Status)})
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

	if err := h.Bookings.UpdateStatusTx(ctx, tx, id, view.Status, model.StatusCancelled); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"message": "booking is no longer pending"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to cancel booking"})
	}
	if err := h.Bookings.RestoreRoomTx(ctx, tx, view.HotelID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to restore availability"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to commit transaction"})
	}
	committed = true

	view.Status = model.StatusCancelled
	h.publish(&view.Booking, view.HotelName)
	return c.JSON(http.StatusOK, view)
}

// publish emits a booking lifecycle event without blocking the response.
// Event delivery is best effort: the booking itself is already durable.
func (h *BookingHandler) publish(b *model.Booking, hotelName string) {
	if h.Publisher == nil {
		return
	}
	ev := queue.BookingEvent{
		BookingID:  b.ID,
		Reference:  b.Reference,
		UserID:     b.UserID,
		HotelID:    b.HotelID,
		HotelName:  hotelName,
		Status:     string(b.Status),
		TotalPrice: b.TotalPrice,
		CheckIn:    b.CheckInDate.Format(dateLayout),
		CheckOut:   b.CheckOutDate.Format(dateLayout),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	observability.ObserveBookingEvent(ev.Status)
	go func() {
		if err := h.Publisher.PublishBookingEvent(ev); err != nil {
			h.Log.Warn().Err(err).Uint64("booking_id", ev.BookingID).Msg("publish booking event failed")
		}
	}()
}
