// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// BookingEvent is published on every booking lifecycle change (created as
// pending, confirmed, completed, cancelled). It carries enough information
// for downstream consumers to log, notify or feed analytics without querying
// the primary database.
type BookingEvent struct {
	BookingID  uint64  `json:"booking_id"`
	Reference  string  `json:"reference"`
	UserID     uint64  `json:"user_id"`
	HotelID    uint64  `json:"hotel_id"`
	HotelName  string  `json:"hotel_name"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	OccurredAt string  `json:"occurred_at"`
}
