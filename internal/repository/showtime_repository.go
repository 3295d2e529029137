package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/cinema-ticket-booking/internal/booking"
    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// ShowtimeRepo provides read access to showtimes.
type ShowtimeRepo struct {
    db *sql.DB
}

// NewShowtimeRepo returns a ShowtimeRepo bound to the given database.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{db: db} }

const showtimeColumns = `id, room_id, movie_title, starts_at, ends_at, status, created_at, updated_at`

// GetShowtime fetches a showtime by id.
func (r *ShowtimeRepo) GetShowtime(ctx context.Context, id uint64) (*model.Showtime, error) {
    var s model.Showtime
    err := r.db.QueryRowContext(ctx,
        `SELECT `+showtimeColumns+` FROM showtimes WHERE id = ?`, id,
    ).Scan(&s.ID, &s.RoomID, &s.MovieTitle, &s.StartsAt, &s.EndsAt, &s.Status, &s.CreatedAt, &s.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, booking.ErrShowtimeNotFound
    }
    if err != nil {
        return nil, err
    }
    return &s, nil
}

// ListUpcoming returns scheduled showtimes that have not started yet,
// soonest first.
func (r *ShowtimeRepo) ListUpcoming(ctx context.Context, now time.Time, limit int) ([]model.Showtime, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+showtimeColumns+` FROM showtimes
         WHERE status = 'SCHEDULED' AND starts_at > ?
         ORDER BY starts_at LIMIT ?`,
        now.UTC(), limit,
    )
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Showtime
    for rows.Next() {
        var s model.Showtime
        if err := rows.Scan(&s.ID, &s.RoomID, &s.MovieTitle, &s.StartsAt, &s.EndsAt, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}
