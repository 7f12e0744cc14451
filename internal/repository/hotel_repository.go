// This file defines repository methods for hotel CRUD and search. Hotels are
// publicly readable; every write is scoped to the owning operator.

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/stayloop/hotel-booking/pkg/model"
)

// HotelRepo encapsulates all database queries related to hotels.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the provided DB handle, allowing
// dependency injection of the database in tests and at startup.
func NewHotelRepo(db *sql.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

// DB exposes the underlying handle for handlers that coordinate
// transactions spanning multiple repositories.
func (r *HotelRepo) DB() *sql.DB { return r.db }

const hotelCols = "id, operator_id, name, address, description, price, available_rooms, created_at, updated_at"

func scanHotel(row interface{ Scan(...any) error }) (*model.Hotel, error) {
	var (
		h    model.Hotel
		desc sql.NullString
	)
	if err := row.Scan(&h.ID, &h.OperatorID, &h.Name, &h.Address, &desc, &h.Price, &h.AvailableRooms, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	h.Description = desc.String
	return &h, nil
}

// Create inserts a new hotel. On success the ID field is populated and the
// row is re-read so callers receive server-side timestamps.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	const qInsert = "INSERT INTO hotels (operator_id, name, address, description, price, available_rooms) VALUES (?,?,?,?,?,?)"
	res, err := r.db.ExecContext(ctx, qInsert,
		h.OperatorID, h.Name, h.Address, nullStr(h.Description), h.Price, h.AvailableRooms)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	got, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *got
	return nil
}

// GetByID fetches a hotel by its ID regardless of operator. It returns
// ErrHotelNotFound if no row is found.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+hotelCols+" FROM hotels WHERE id = ?", id)
	h, err := scanHotel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHotelNotFound
	}
	return h, err
}

// GetByIDAndOperator fetches a hotel only if it belongs to the specified
// operator. A hotel owned by someone else reads as not found so the API does
// not leak which IDs exist.
func (r *HotelRepo) GetByIDAndOperator(ctx context.Context, id, operatorID uint64) (*model.Hotel, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+hotelCols+" FROM hotels WHERE id = ? AND operator_id = ?", id, operatorID)
	h, err := scanHotel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHotelNotFound
	}
	return h, err
}

// Search returns hotels whose name contains the given fragment, ordered by
// id. An empty fragment lists everything.
func (r *HotelRepo) Search(ctx context.Context, name string) ([]*model.Hotel, error) {
	q := "SELECT " + hotelCols + " FROM hotels"
	args := []any{}
	if s := strings.TrimSpace(name); s != "" {
		q += " WHERE name LIKE ?"
		args = append(args, "%"+s+"%")
	}
	q += " ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q, args...)
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

// ListByOperator returns all hotels owned by an operator ordered by id.
func (r *HotelRepo) ListByOperator(ctx context.Context, operatorID uint64) ([]*model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+hotelCols+" FROM hotels WHERE operator_id = ? ORDER BY id", operatorID)
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

// Update replaces the mutable fields of a hotel owned by the operator. It
// returns sql.ErrNoRows when no row is affected (not found / not owned).
func (r *HotelRepo) Update(ctx context.Context, h *model.Hotel, operatorID uint64) error {
	const q = `UPDATE hotels
	           SET name = ?, address = ?, description = ?, price = ?, available_rooms = ?, updated_at = NOW()
	           WHERE id = ? AND operator_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		h.Name, h.Address, nullStr(h.Description), h.Price, h.AvailableRooms, h.ID, operatorID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByIDAndOperator removes a hotel and its favorites, provided it
// belongs to the operator and has no bookings still in a non-terminal
// status. Returns sql.ErrNoRows when the hotel does not exist, ErrForbidden
// when owned by another operator and ErrConflict when live bookings remain.
func (r *HotelRepo) DeleteByIDAndOperator(ctx context.Context, id, operatorID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var dbOperatorID uint64
	if err := tx.QueryRowContext(ctx, "SELECT operator_id FROM hotels WHERE id = ?", id).Scan(&dbOperatorID); err != nil {
		return err
	}
	if dbOperatorID != operatorID {
		return ErrForbidden
	}

	var live int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE hotel_id = ? AND status IN ('pending','confirmed')",
		id).Scan(&live); err != nil {
		return err
	}
	if live > 0 {
		return ErrConflict
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM favorites WHERE hotel_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM hotels WHERE id = ?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
