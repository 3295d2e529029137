package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/iliyamo/cinema-ticket-booking/internal/booking"
    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// SeatHoldRepo provides data access to the seat_holds table.  The
// table carries UNIQUE KEY uq_claim (showtime_id, seat_code); because
// MySQL cannot scope a unique key to unexpired rows, every claiming
// transaction purges lapsed HOLDING rows for the showtime before
// inserting (PurgeExpiredTx) and the sweeper does the same in the
// background.  All timestamps are UTC.
type SeatHoldRepo struct {
    db *sql.DB
}

// NewSeatHoldRepo returns a SeatHoldRepo bound to the given database.
func NewSeatHoldRepo(db *sql.DB) *SeatHoldRepo { return &SeatHoldRepo{db: db} }

const activeHoldsQuery = `SELECT id, booking_id, user_id, showtime_id, room_id, seat_code, seat_type, status, expires_at, created_at
FROM seat_holds
WHERE showtime_id = ? AND (status = 'SOLD' OR (status = 'HOLDING' AND expires_at > ?))`

// ActiveHolds returns the authoritative claim set for a showtime: all
// SOLD rows plus the HOLDING rows that have not expired at `now`.
// Rows past their expiry are treated as if they never existed.
func (r *SeatHoldRepo) ActiveHolds(ctx context.Context, showtimeID uint64, now time.Time) ([]model.SeatHold, error) {
    rows, err := r.db.QueryContext(ctx, activeHoldsQuery, showtimeID, now.UTC())
    if err != nil {
        return nil, err
    }
    return scanHolds(rows)
}

// ActiveHoldsTx is ActiveHolds executed inside a claiming transaction
// so validation sees the same snapshot the insert will act on.
func (r *SeatHoldRepo) ActiveHoldsTx(ctx context.Context, tx *sql.Tx, showtimeID uint64, now time.Time) ([]model.SeatHold, error) {
    rows, err := tx.QueryContext(ctx, activeHoldsQuery, showtimeID, now.UTC())
    if err != nil {
        return nil, err
    }
    return scanHolds(rows)
}

// PurgeExpiredTx deletes lapsed HOLDING rows for a showtime.  SOLD
// rows are never touched.  Without this, a dead row would keep the
// uq_claim slot occupied and block new claims on a logically free
// seat.
func (r *SeatHoldRepo) PurgeExpiredTx(ctx context.Context, tx *sql.Tx, showtimeID uint64, now time.Time) (int64, error) {
    res, err := tx.ExecContext(ctx,
        `DELETE FROM seat_holds WHERE showtime_id = ? AND status = 'HOLDING' AND expires_at <= ?`,
        showtimeID, now.UTC(),
    )
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// CreateHoldsTx inserts all holds in one statement.  When the insert
// violates uq_claim a concurrent request claimed one of the seats
// first; the whole statement fails and booking.ErrSeatClaimConflict is
// returned so the caller rolls back the booking row as well.
func (r *SeatHoldRepo) CreateHoldsTx(ctx context.Context, tx *sql.Tx, holds []model.SeatHold) error {
    if len(holds) == 0 {
        return nil
    }
    query := `INSERT INTO seat_holds (booking_id, user_id, showtime_id, room_id, seat_code, seat_type, status, expires_at) VALUES `
    args := make([]interface{}, 0, len(holds)*8)
    for i, h := range holds {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?, ?, ?, ?, ?)"
        args = append(args, h.BookingID, h.UserID, h.ShowtimeID, h.RoomID, h.SeatCode, h.SeatType, h.Status, h.ExpiresAt.UTC())
    }
    if _, err := tx.ExecContext(ctx, query, args...); err != nil {
        if isDuplicateEntry(err) {
            return booking.ErrSeatClaimConflict
        }
        return err
    }
    return nil
}

// MarkSoldTx flips every hold of a booking to SOLD.  No expiry filter
// on purpose: payment success overrides a technically lapsed hold.
func (r *SeatHoldRepo) MarkSoldTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE seat_holds SET status = 'SOLD' WHERE booking_id = ?`,
        bookingID,
    )
    return err
}

// RestampTx moves the expiry of a booking's HOLDING rows, keeping the
// holds aligned with the booking's own deadline.
func (r *SeatHoldRepo) RestampTx(ctx context.Context, tx *sql.Tx, bookingID uint64, expiresAt time.Time) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE seat_holds SET expires_at = ? WHERE booking_id = ? AND status = 'HOLDING'`,
        expiresAt.UTC(), bookingID,
    )
    return err
}

// DeleteByBookingTx releases all holds of a booking and returns how
// many rows were removed.
func (r *SeatHoldRepo) DeleteByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (int64, error) {
    res, err := tx.ExecContext(ctx, `DELETE FROM seat_holds WHERE booking_id = ?`, bookingID)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

func scanHolds(rows *sql.Rows) ([]model.SeatHold, error) {
    defer rows.Close()
    var holds []model.SeatHold
    for rows.Next() {
        var h model.SeatHold
        if err := rows.Scan(&h.ID, &h.BookingID, &h.UserID, &h.ShowtimeID, &h.RoomID, &h.SeatCode, &h.SeatType, &h.Status, &h.ExpiresAt, &h.CreatedAt); err != nil {
            return nil, err
        }
        holds = append(holds, h)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return holds, nil
}
