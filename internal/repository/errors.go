// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel errors reused across repositories so
// handlers can translate failure scenarios into HTTP responses.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot proceed because of the
// resource's current state, e.g. confirming a booking that is not pending or
// deleting a hotel that still has active bookings. Handlers translate this
// into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned by user creation when the email is taken.
var ErrEmailExists = errors.New("email already exists")

// ErrHotelNotFound is returned when a hotel cannot be found.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrBookingNotFound is returned when a booking cannot be found.
var ErrBookingNotFound = errors.New("booking not found")

// ErrNoRooms is returned when a booking is requested against a hotel with
// no available rooms for the party.
var ErrNoRooms = errors.New("no rooms available")
