package model

import "time"

// BookingStatus is the closed set of states a booking moves through.
// pending -> confirmed -> completed is driven by the operator of the booked
// hotel; pending -> cancelled is driven by the booking's user. cancelled and
// completed are terminal.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Valid reports whether s is a member of the status enumeration.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Label returns the human-readable display label for a status.
func (s BookingStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusConfirmed:
		return "Confirmed"
	case StatusCancelled:
		return "Cancelled"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}

// BookingAction names a status-changing operation on a booking.
type BookingAction string

const (
	ActionConfirm  BookingAction = "confirm"
	ActionComplete BookingAction = "complete"
	ActionCancel   BookingAction = "cancel"
)

// actionTarget maps each action to the status it produces.
var actionTarget = map[BookingAction]BookingStatus{
	ActionConfirm:  StatusConfirmed,
	ActionComplete: StatusCompleted,
	ActionCancel:   StatusCancelled,
}

// Target returns the status the action transitions a booking into.
func (a BookingAction) Target() BookingStatus {
	return actionTarget[a]
}

// PermittedActions is the single source of truth for which actions a given
// role may take on a booking in a given status. Both the HTTP handlers and
// the API client consume it, so the user view and the operator view can
// never disagree about what a status allows.
func PermittedActions(status BookingStatus, role string) []BookingAction {
	switch status {
	case StatusPending:
		switch role {
		case RoleOperator:
			return []BookingAction{ActionConfirm}
		case RoleUser:
			return []BookingAction{ActionCancel}
		}
	case StatusConfirmed:
		if role == RoleOperator {
			return []BookingAction{ActionComplete}
		}
	}
	// cancelled and completed are terminal for every role
	return nil
}

// CanTransition reports whether an action is legal for the role on a booking
// currently in status.
func CanTransition(status BookingStatus, role string, action BookingAction) bool {
	for _, a := range PermittedActions(status, role) {
		if a == action {
			return true
		}
	}
	return false
}

// Booking records a user's stay request at a hotel. TotalPrice is computed
// server-side from the hotel's nightly price and the stay length; the client
// never prices a booking itself.
type Booking struct {
	ID              uint64        `json:"id"`
	Reference       string        `json:"reference"`
	UserID          uint64        `json:"-"`
	HotelID         uint64        `json:"hotelId"`
	CheckInDate     time.Time     `json:"checkInDate"`
	CheckOutDate    time.Time     `json:"checkOutDate"`
	GuestCount      int           `json:"guestCount"`
	TotalPrice      float64       `json:"totalPrice"`
	Status          BookingStatus `json:"status"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// BookingView is a booking joined with the hotel it targets. UserEmail is
// populated only for the operator listing and omitted from user responses.
type BookingView struct {
	Booking
	HotelName    string `json:"hotelName"`
	HotelAddress string `json:"hotelAddress"`
	UserEmail    string `json:"userEmail,omitempty"`
}

// Nights returns the stay length in whole nights.
func (b Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}
