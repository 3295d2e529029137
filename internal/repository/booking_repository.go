package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/iliyamo/cinema-ticket-booking/internal/booking"
    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// BookingRepo provides data access to the bookings and booking_seats
// tables.  Terminal bookings are never deleted; row mutation happens
// only through UpdateStatusTx.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, public_id, user_id, showtime_id, status, expires_at, base_amount_cents, discount_amount_cents, final_amount_cents, created_at, updated_at`

// InsertBookingTx inserts the booking row and its seat snapshot within
// the given transaction, filling b.ID and the seat BookingIDs.
func (r *BookingRepo) InsertBookingTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
    res, err := tx.ExecContext(ctx,
        `INSERT INTO bookings (public_id, user_id, showtime_id, status, expires_at, base_amount_cents, discount_amount_cents, final_amount_cents)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
        b.PublicID, b.UserID, b.ShowtimeID, b.Status, nullableTime(b.ExpiresAt),
        b.BaseAmountCents, b.DiscountAmountCents, b.FinalAmountCents,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)

    if len(b.Seats) == 0 {
        return nil
    }
    query := `INSERT INTO booking_seats (booking_id, seat_code, seat_type, unit_price_cents) VALUES `
    args := make([]interface{}, 0, len(b.Seats)*4)
    for i := range b.Seats {
        b.Seats[i].BookingID = b.ID
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?)"
        args = append(args, b.ID, b.Seats[i].SeatCode, b.Seats[i].SeatType, b.Seats[i].UnitPriceCents)
    }
    _, err = tx.ExecContext(ctx, query, args...)
    return err
}

// GetForUpdateTx loads a booking by public id and locks its row until
// the transaction ends, serialising concurrent transitions on the same
// booking (confirm vs cancel vs sweep).
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, publicID string) (*model.Booking, error) {
    row := tx.QueryRowContext(ctx,
        `SELECT `+bookingColumns+` FROM bookings WHERE public_id = ? FOR UPDATE`, publicID)
    b, err := scanBooking(row)
    if err != nil {
        return nil, err
    }
    seats, err := r.seatsFor(ctx, tx, b.ID)
    if err != nil {
        return nil, err
    }
    b.Seats = seats
    return b, nil
}

// HasActiveBookingTx reports whether the user already has an unexpired
// DRAFT or PENDING_PAYMENT booking for the showtime.  The matching row,
// if any, is locked so two creation attempts by the same user cannot
// both pass the check.
func (r *BookingRepo) HasActiveBookingTx(ctx context.Context, tx *sql.Tx, userID, showtimeID uint64, now time.Time) (bool, error) {
    var id uint64
    err := tx.QueryRowContext(ctx,
        `SELECT id FROM bookings
         WHERE user_id = ? AND showtime_id = ? AND status IN ('DRAFT', 'PENDING_PAYMENT') AND expires_at > ?
         LIMIT 1 FOR UPDATE`,
        userID, showtimeID, now.UTC(),
    ).Scan(&id)
    if errors.Is(err, sql.ErrNoRows) {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

// UpdateStatusTx writes a new status and deadline.  A nil expiresAt
// clears the deadline, which is what every terminal transition does.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.BookingStatus, expiresAt *time.Time) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE bookings SET status = ?, expires_at = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`,
        status, nullableTime(expiresAt), id,
    )
    return err
}

// StaleForUpdateTx loads and locks non-terminal bookings whose
// deadline has passed, oldest deadline first.
func (r *BookingRepo) StaleForUpdateTx(ctx context.Context, tx *sql.Tx, now time.Time, limit int) ([]model.Booking, error) {
    rows, err := tx.QueryContext(ctx,
        `SELECT `+bookingColumns+` FROM bookings
         WHERE status IN ('DRAFT', 'PENDING_PAYMENT') AND expires_at <= ?
         ORDER BY expires_at LIMIT ? FOR UPDATE`,
        now.UTC(), limit,
    )
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Booking
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *b)
    }
    return out, rows.Err()
}

// GetByPublicID loads a booking with its seats without locking.
func (r *BookingRepo) GetByPublicID(ctx context.Context, publicID string) (*model.Booking, error) {
    row := r.db.QueryRowContext(ctx,
        `SELECT `+bookingColumns+` FROM bookings WHERE public_id = ?`, publicID)
    b, err := scanBooking(row)
    if err != nil {
        return nil, err
    }
    seats, err := r.seatsFor(ctx, nil, b.ID)
    if err != nil {
        return nil, err
    }
    b.Seats = seats
    return b, nil
}

// ListByUser returns all bookings of a user, newest first, with their
// seat snapshots attached.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+bookingColumns+` FROM bookings WHERE user_id = ? ORDER BY created_at DESC`, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Booking
    index := make(map[uint64]int)
    var ids []interface{}
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        index[b.ID] = len(out)
        ids = append(ids, b.ID)
        out = append(out, *b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(out) == 0 {
        return out, nil
    }

    query := `SELECT id, booking_id, seat_code, seat_type, unit_price_cents FROM booking_seats WHERE booking_id IN (?` +
        strings.Repeat(",?", len(ids)-1) + `) ORDER BY id`
    seatRows, err := r.db.QueryContext(ctx, query, ids...)
    if err != nil {
        return nil, err
    }
    defer seatRows.Close()
    for seatRows.Next() {
        var s model.BookingSeat
        if err := seatRows.Scan(&s.ID, &s.BookingID, &s.SeatCode, &s.SeatType, &s.UnitPriceCents); err != nil {
            return nil, err
        }
        if i, ok := index[s.BookingID]; ok {
            out[i].Seats = append(out[i].Seats, s)
        }
    }
    return out, seatRows.Err()
}

// seatsFor loads the seat snapshot of one booking, via tx when given.
func (r *BookingRepo) seatsFor(ctx context.Context, tx *sql.Tx, bookingID uint64) ([]model.BookingSeat, error) {
    const q = `SELECT id, booking_id, seat_code, seat_type, unit_price_cents FROM booking_seats WHERE booking_id = ? ORDER BY id`
    var rows *sql.Rows
    var err error
    if tx != nil {
        rows, err = tx.QueryContext(ctx, q, bookingID)
    } else {
        rows, err = r.db.QueryContext(ctx, q, bookingID)
    }
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var seats []model.BookingSeat
    for rows.Next() {
        var s model.BookingSeat
        if err := rows.Scan(&s.ID, &s.BookingID, &s.SeatCode, &s.SeatType, &s.UnitPriceCents); err != nil {
            return nil, err
        }
        seats = append(seats, s)
    }
    return seats, rows.Err()
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
    Scan(dest ...interface{}) error
}

func scanBooking(row scanner) (*model.Booking, error) {
    var b model.Booking
    var expires sql.NullTime
    err := row.Scan(&b.ID, &b.PublicID, &b.UserID, &b.ShowtimeID, &b.Status, &expires,
        &b.BaseAmountCents, &b.DiscountAmountCents, &b.FinalAmountCents, &b.CreatedAt, &b.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, booking.ErrBookingNotFound
    }
    if err != nil {
        return nil, err
    }
    if expires.Valid {
        t := expires.Time
        b.ExpiresAt = &t
    }
    return &b, nil
}

func nullableTime(t *time.Time) interface{} {
    if t == nil {
        return nil
    }
    return t.UTC()
}
