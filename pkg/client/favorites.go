package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/stayloop/hotel-booking/pkg/model"
)

// ErrNoSession is returned when a favorites mutation is attempted without an
// active session. The message is user-facing: views surface it as a notice
// next to the toggle control.
var ErrNoSession = errors.New("sign in to manage favorites")

// Favorites mirrors the user's favorite set locally so membership checks are
// instant. The local set is patched only after the server confirms a change;
// a failed toggle leaves it untouched.
type Favorites struct {
	client *Client

	mu  sync.RWMutex
	ids map[uint64]struct{}
}

func NewFavorites(c *Client) *Favorites {
	return &Favorites{client: c, ids: make(map[uint64]struct{})}
}

// Load replaces the local set with the server's list and returns the hotels.
func (f *Favorites) Load(ctx context.Context) ([]model.Hotel, error) {
	var resp struct {
		Items []model.Hotel `json:"items"`
	}
	if err := f.client.get(ctx, "/api/favorites", &resp); err != nil {
		return nil, err
	}
	ids := make(map[uint64]struct{}, len(resp.Items))
	for _, h := range resp.Items {
		ids[h.ID] = struct{}{}
	}
	f.mu.Lock()
	f.ids = ids
	f.mu.Unlock()
	return resp.Items, nil
}

// Contains reports local membership.
func (f *Favorites) Contains(hotelID uint64) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ids[hotelID]
	return ok
}

// Toggle adds the hotel when absent and removes it when present. It returns
// the new membership. Toggling twice restores the original state. Without an
// active session it returns ErrNoSession before any request is made.
func (f *Favorites) Toggle(ctx context.Context, hotelID uint64) (bool, error) {
	if token, err := f.client.Tokens.Load(); err != nil || token == "" {
		return f.Contains(hotelID), ErrNoSession
	}
	if f.Contains(hotelID) {
		if err := f.remove(ctx, hotelID); err != nil {
			return true, err
		}
		f.patch(hotelID, false)
		return false, nil
	}
	if err := f.add(ctx, hotelID); err != nil {
		return false, err
	}
	f.patch(hotelID, true)
	return true, nil
}

func (f *Favorites) add(ctx context.Context, hotelID uint64) error {
	body := map[string]uint64{"hotelId": hotelID}
	return f.client.post(ctx, "/api/favorites", body, nil)
}

func (f *Favorites) remove(ctx context.Context, hotelID uint64) error {
	return f.client.delete(ctx, fmt.Sprintf("/api/favorites/%d", hotelID))
}

func (f *Favorites) patch(hotelID uint64, member bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if member {
		f.ids[hotelID] = struct{}{}
	} else {
		delete(f.ids, hotelID)
	}
}
