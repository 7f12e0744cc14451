package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stayloop/hotel-booking/pkg/model"
)

// BookingRepo encapsulates booking persistence. Status transitions are
// expressed as guarded UPDATEs (WHERE status = <from>) so an illegal
// transition can never be written, regardless of what any client displays.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can run a booking creation
// and the room-count adjustment in one transaction.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a booking inside the caller's transaction. On success the
// ID and CreatedAt fields are populated.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (reference, user_id, hotel_id, check_in, check_out, guest_count, total_price, status, special_requests)
	           VALUES (?,?,?,?,?,?,?,?,?)`
	res, err := tx.ExecContext(ctx, q,
		b.Reference, b.UserID, b.HotelID, b.CheckInDate, b.CheckOutDate,
		b.GuestCount, b.TotalPrice, b.Status, nullStr(b.SpecialRequests))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return tx.QueryRowContext(ctx, "SELECT created_at FROM bookings WHERE id = ?", b.ID).Scan(&b.CreatedAt)
}

// DecrementRoomsTx reserves one room on the hotel inside the caller's
// transaction. The guarded UPDATE keeps available_rooms from going negative
// under concurrent bookings; zero affected rows means the hotel is full.
func (r *BookingRepo) DecrementRoomsTx(ctx context.Context, tx *sql.Tx, hotelID uint64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE hotels SET available_rooms = available_rooms - 1, updated_at = NOW() WHERE id = ? AND available_rooms > 0",
		hotelID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoRooms
	}
	return nil
}

// RestoreRoomTx returns a room to the hotel when a pending booking is
// cancelled.
func (r *BookingRepo) RestoreRoomTx(ctx context.Context, tx *sql.Tx, hotelID uint64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE hotels SET available_rooms = available_rooms + 1, updated_at = NOW() WHERE id = ?",
		hotelID)
	return err
}

const bookingViewCols = `b.id, b.reference, b.user_id, b.hotel_id, b.check_in, b.check_out,
	b.guest_count, b.total_price, b.status, b.special_requests, b.created_at,
	h.name, h.address, h.operator_id`

type bookingRow struct {
	view       model.BookingView
	operatorID uint64
}

func scanBookingRow(row interface{ Scan(...any) error }, extra ...any) (*bookingRow, error) {
	var (
		br  bookingRow
		req sql.NullString
	)
	dest := []any{
		&br.view.ID, &br.view.Reference, &br.view.UserID, &br.view.HotelID,
		&br.view.CheckInDate, &br.view.CheckOutDate, &br.view.GuestCount,
		&br.view.TotalPrice, &br.view.Status, &req, &br.view.CreatedAt,
		&br.view.HotelName, &br.view.HotelAddress, &br.operatorID,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	br.view.SpecialRequests = req.String
	return &br, nil
}

// GetView loads a booking joined with its hotel, plus the hotel's operator
// id for ownership checks. Returns ErrBookingNotFound when no row matches.
func (r *BookingRepo) GetView(ctx context.Context, id uint64) (*model.BookingView, uint64, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+bookingViewCols+" FROM bookings b JOIN hotels h ON h.id = b.hotel_id WHERE b.id = ?", id)
	br, err := scanBookingRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrBookingNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	return &br.view, br.operatorID, nil
}

// ListByUser returns the user's bookings, newest first, with hotel name and
// address joined in. UserEmail stays empty: it is an operator-only field.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.BookingView, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingViewCols+" FROM bookings b JOIN hotels h ON h.id = b.hotel_id WHERE b.user_id = ? ORDER BY b.created_at DESC, b.id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.BookingView{}
	for rows.Next() {
		br, err := scanBookingRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, &br.view)
	}
	return out, rows.Err()
}

// ListByOperator returns bookings on every hotel the operator owns, newest
// first, including the booking user's email.
func (r *BookingRepo) ListByOperator(ctx context.Context, operatorID uint64) ([]*model.BookingView, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingViewCols+`, u.email
		 FROM bookings b
		 JOIN hotels h ON h.id = b.hotel_id
		 JOIN users u ON u.id = b.user_id
		 WHERE h.operator_id = ?
		 ORDER BY b.created_at DESC, b.id DESC`,
		operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.BookingView{}
	for rows.Next() {
		var email string
		br, err := scanBookingRow(rows, &email)
		if err != nil {
			return nil, err
		}
		br.view.UserEmail = email
		out = append(out, &br.view)
	}
	return out, rows.Err()
}

// UpdateStatusTx transitions a booking from one status to another inside the
// caller's transaction. Zero affected rows means the booking was not in the
// expected status anymore, reported as ErrConflict.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, from, to model.BookingStatus) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?",
		to, id, from)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}
