package model

import "time"

// RoomType classifies a screening room for pricing purposes.  The
// pricing resolver combines the room type with the seat type to find
// the base price of a seat.
type RoomType string

const (
    RoomStandard RoomType = "STANDARD"
    RoomPremium  RoomType = "PREMIUM"
    RoomIMAX     RoomType = "IMAX"
)

// Room represents an individual screening room.  Its physical seat
// layout lives in the seats table and is loaded as a SeatMap; the row
// and column counts here define the grid dimensions.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – human readable room name, unique per cinema.
//  RoomType  – pricing category of the room.
//  RowCount  – number of seating rows in the grid.
//  ColCount  – number of grid columns per row.
//  IsActive  – whether the room currently accepts showtimes.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Room struct {
    ID        uint64    // rooms.id
    Name      string    // rooms.name
    RoomType  RoomType  // rooms.room_type
    RowCount  uint32    // rooms.row_count
    ColCount  uint32    // rooms.col_count
    IsActive  bool      // rooms.is_active
    CreatedAt time.Time // rooms.created_at
    UpdatedAt time.Time // rooms.updated_at
}
