package client

import (
	"context"
	"fmt"
	"time"

	"github.com/stayloop/hotel-booking/pkg/model"
)

const dateLayout = "2006-01-02"

// CreateBookingInput is the payload for POST /api/bookings. Dates are
// YYYY-MM-DD strings, matching what the server parses.
type CreateBookingInput struct {
	HotelID         uint64 `json:"hotelId" validate:"required"`
	CheckInDate     string `json:"checkInDate" validate:"required"`
	CheckOutDate    string `json:"checkOutDate" validate:"required"`
	GuestCount      int    `json:"guestCount" validate:"required,min=1"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// checkDates rejects malformed or misordered dates before the payload leaves
// the process. The server enforces the same rule; catching it here gives the
// form a field-level error without a round trip.
func (in CreateBookingInput) checkDates() error {
	checkIn, err := time.Parse(dateLayout, in.CheckInDate)
	if err != nil {
		return &FieldError{Field: "checkInDate", Message: "must be YYYY-MM-DD"}
	}
	checkOut, err := time.Parse(dateLayout, in.CheckOutDate)
	if err != nil {
		return &FieldError{Field: "checkOutDate", Message: "must be YYYY-MM-DD"}
	}
	if !checkOut.After(checkIn) {
		return &FieldError{Field: "checkOutDate", Message: "must be after checkInDate"}
	}
	return nil
}

// CreateBooking validates the input, then books the stay. The returned view
// carries the server-computed total price and the generated reference.
func (c *Client) CreateBooking(ctx context.Context, in CreateBookingInput) (*model.BookingView, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	if err := in.checkDates(); err != nil {
		return nil, err
	}
	var view model.BookingView
	if err := c.post(ctx, "/api/bookings", in, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// MyBookings lists the calling user's bookings, newest first.
func (c *Client) MyBookings(ctx context.Context) ([]model.BookingView, error) {
	var resp struct {
		Items []model.BookingView `json:"items"`
	}
	if err := c.get(ctx, "/api/bookings", &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// CancelBooking cancels one of the caller's pending bookings and returns the
// updated view.
func (c *Client) CancelBooking(ctx context.Context, id uint64) (*model.BookingView, error) {
	var view model.BookingView
	if err := c.post(ctx, fmt.Sprintf("/api/bookings/%d/cancel", id), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// OperatorBookings lists bookings against the calling operator's hotels,
// including the booking user's email.
func (c *Client) OperatorBookings(ctx context.Context) ([]model.BookingView, error) {
	var resp struct {
		Items []model.BookingView `json:"items"`
	}
	if err := c.get(ctx, "/api/bookings/operator", &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ConfirmBooking moves a pending booking on one of the operator's hotels to
// confirmed.
func (c *Client) ConfirmBooking(ctx context.Context, id uint64) (*model.BookingView, error) {
	return c.advanceBooking(ctx, id, model.ActionConfirm)
}

// CompleteBooking moves a confirmed booking to completed.
func (c *Client) CompleteBooking(ctx context.Context, id uint64) (*model.BookingView, error) {
	return c.advanceBooking(ctx, id, model.ActionComplete)
}

func (c *Client) advanceBooking(ctx context.Context, id uint64, action model.BookingAction) (*model.BookingView, error) {
	var view model.BookingView
	path := fmt.Sprintf("/api/bookings/%d/%s", id, action)
	if err := c.post(ctx, path, nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// BookingActions returns the actions the given role may take on a booking,
// straight from the shared state machine. A view over a cancelled or
// completed booking gets none, for any role.
func BookingActions(b model.Booking, role string) []model.BookingAction {
	return model.PermittedActions(b.Status, role)
}
