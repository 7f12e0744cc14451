package model

import "time"

// Hotel represents a property managed by an operator. Price is the nightly
// rate. AvailableRooms is decremented when a booking is created and restored
// when a pending booking is cancelled.
type Hotel struct {
	ID             uint64    `json:"id"`
	OperatorID     uint64    `json:"operatorId"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Description    string    `json:"description,omitempty"`
	Price          float64   `json:"price"`
	AvailableRooms int       `json:"availableRooms"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// Favorite is a (user, hotel) relation. The API represents favorites to the
// client as the favorited Hotel records, so this struct only appears in the
// repository layer.
type Favorite struct {
	UserID    uint64
	HotelID   uint64
	CreatedAt time.Time
}
