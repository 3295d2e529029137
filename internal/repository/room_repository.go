package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"

    "github.com/iliyamo/cinema-ticket-booking/internal/booking"
    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// RoomRepo provides read access to rooms and their seat layout.  The
// layout is stored as one row per physical seat cell in the seats
// table; GetSeatMap assembles it into the in-memory grid the resolver
// works on.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// GetRoom fetches a room by id.
func (r *RoomRepo) GetRoom(ctx context.Context, id uint64) (*model.Room, error) {
    var room model.Room
    err := r.db.QueryRowContext(ctx,
        `SELECT id, name, room_type, row_count, col_count, is_active, created_at, updated_at
         FROM rooms WHERE id = ?`, id,
    ).Scan(&room.ID, &room.Name, &room.RoomType, &room.RowCount, &room.ColCount,
        &room.IsActive, &room.CreatedAt, &room.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, booking.ErrRoomNotFound
    }
    if err != nil {
        return nil, err
    }
    return &room, nil
}

// GetSeatMap loads the room's static seat grid.  Grid positions
// without a seats row stay nil (aisles, gaps).  A seat cell outside
// the room's declared grid dimensions is corrupted layout data and is
// reported as an error rather than silently dropped.
func (r *RoomRepo) GetSeatMap(ctx context.Context, roomID uint64) (*model.SeatMap, error) {
    room, err := r.GetRoom(ctx, roomID)
    if err != nil {
        return nil, err
    }
    rows, err := r.db.QueryContext(ctx,
        `SELECT row_idx, col_idx, seat_code, seat_type FROM seats
         WHERE room_id = ? ORDER BY row_idx, col_idx`, roomID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    grid := make([][]*model.SeatCell, room.RowCount)
    for i := range grid {
        grid[i] = make([]*model.SeatCell, room.ColCount)
    }
    for rows.Next() {
        var rowIdx, colIdx uint32
        var cell model.SeatCell
        if err := rows.Scan(&rowIdx, &colIdx, &cell.SeatCode, &cell.SeatType); err != nil {
            return nil, err
        }
        if rowIdx >= room.RowCount || colIdx >= room.ColCount {
            return nil, fmt.Errorf("seat %s of room %d lies outside the %dx%d grid",
                cell.SeatCode, roomID, room.RowCount, room.ColCount)
        }
        c := cell
        grid[rowIdx][colIdx] = &c
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return &model.SeatMap{RoomID: roomID, Rows: grid}, nil
}
