package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/stayloop/hotel-booking/pkg/model"
)

// FavoriteRepo persists the (user, hotel) favorites relation. The API
// represents a user's favorites as the favorited hotel records, so listing
// joins straight into the hotels table.
type FavoriteRepo struct {
	db *sql.DB
}

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add inserts a favorite. Adding an existing favorite reports ErrConflict;
// the handler maps it so a double-toggle stays harmless for the client.
func (r *FavoriteRepo) Add(ctx context.Context, userID, hotelID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, hotel_id) VALUES (?,?)",
		userID, hotelID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Remove deletes a favorite. Removing an absent favorite reports
// sql.ErrNoRows.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, hotelID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = ? AND hotel_id = ?",
		userID, hotelID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListHotels returns the hotel records the user has favorited, in the order
// they were favorited.
func (r *FavoriteRepo) ListHotels(ctx context.Context, userID uint64) ([]*model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT h.id, h.operator_id, h.name, h.address, h.description, h.price, h.available_rooms, h.created_at, h.updated_at
		 FROM favorites f
		 JOIN hotels h ON h.id = f.hotel_id
		 WHERE f.user_id = ?
		 ORDER BY f.created_at, h.id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
