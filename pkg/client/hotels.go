package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/stayloop/hotel-booking/pkg/model"
)

// HotelInput is the payload for creating or updating a hotel.
type HotelInput struct {
	Name           string  `json:"name" validate:"required"`
	Address        string  `json:"address" validate:"required"`
	Description    string  `json:"description,omitempty"`
	Price          float64 `json:"price" validate:"required,gt=0"`
	AvailableRooms int     `json:"availableRooms" validate:"min=0"`
}

// SearchHotels lists hotels, optionally filtered by a name substring. Public,
// no session required.
func (c *Client) SearchHotels(ctx context.Context, name string) ([]model.Hotel, error) {
	path := "/api/hotels"
	if name != "" {
		path += "?name=" + url.QueryEscape(name)
	}
	var resp struct {
		Items []model.Hotel `json:"items"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetHotel fetches one hotel by id.
func (c *Client) GetHotel(ctx context.Context, id uint64) (*model.Hotel, error) {
	var hotel model.Hotel
	if err := c.get(ctx, fmt.Sprintf("/api/hotels/%d", id), &hotel); err != nil {
		return nil, err
	}
	return &hotel, nil
}

// CreateHotel registers a new hotel owned by the calling operator.
func (c *Client) CreateHotel(ctx context.Context, in HotelInput) (*model.Hotel, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	var hotel model.Hotel
	if err := c.post(ctx, "/api/hotels", in, &hotel); err != nil {
		return nil, err
	}
	return &hotel, nil
}

// UpdateHotel replaces a hotel's attributes. Operator-only; the server
// rejects hotels the caller does not own.
func (c *Client) UpdateHotel(ctx context.Context, id uint64, in HotelInput) (*model.Hotel, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	var hotel model.Hotel
	if err := c.put(ctx, fmt.Sprintf("/api/hotels/%d", id), in, &hotel); err != nil {
		return nil, err
	}
	return &hotel, nil
}

// DeleteHotel removes a hotel. Fails with a conflict while pending or
// confirmed bookings exist against it.
func (c *Client) DeleteHotel(ctx context.Context, id uint64) error {
	return c.delete(ctx, fmt.Sprintf("/api/hotels/%d", id))
}

// MyHotels lists the hotels owned by the calling operator.
func (c *Client) MyHotels(ctx context.Context) ([]model.Hotel, error) {
	var resp struct {
		Items []model.Hotel `json:"items"`
	}
	if err := c.get(ctx, "/api/hotels/mine", &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}
