package model

// SeatType classifies a logical seat.  NORMAL and VIP seats occupy a
// single grid cell; a COUPLE seat spans exactly two adjacent cells that
// share the same seat code and is always sold as one unit.
type SeatType string

const (
    SeatTypeNormal SeatType = "NORMAL" // standard single seat
    SeatTypeVIP    SeatType = "VIP"    // premium single seat
    SeatTypeCouple SeatType = "COUPLE" // double-width seat, one code over two cells
)

// Valid reports whether t is one of the known seat types.
func (t SeatType) Valid() bool {
    switch t {
    case SeatTypeNormal, SeatTypeVIP, SeatTypeCouple:
        return true
    }
    return false
}

// SeatCell describes one physical grid position that contains a seat.
// Cells without a seat (aisles, gaps) are represented as nil entries in
// the seat map grid rather than as SeatCell values.
//
// Fields:
//  SeatCode – logical seat identifier, unique within a room and stable
//             across showtimes (e.g. "A1").  Both cells of a COUPLE
//             seat carry the same code.
//  SeatType – type of the seat occupying this cell.
type SeatCell struct {
    SeatCode string   // seats.seat_code
    SeatType SeatType // seats.seat_type
}

// SeatMap is the immutable physical layout of a room: a rows×columns
// grid whose entries are either nil (no seat) or a SeatCell.  The map
// is owned by a Room and never changes per showtime; per-showtime
// availability is derived separately from the active seat holds.
type SeatMap struct {
    RoomID uint64        // owning room
    Rows   [][]*SeatCell // grid[row][col]; nil means no physical seat
}

// CellsByCode groups the grid cells by logical seat code.  NORMAL and
// VIP codes map to one cell, well-formed COUPLE codes to two.  The
// validator uses the cell count to detect malformed couple seats.
func (m *SeatMap) CellsByCode() map[string][]*SeatCell {
    out := make(map[string][]*SeatCell)
    for _, row := range m.Rows {
        for _, cell := range row {
            if cell == nil {
                continue
            }
            out[cell.SeatCode] = append(out[cell.SeatCode], cell)
        }
    }
    return out
}

// LogicalSeatCount returns the number of distinct bookable seats in the
// map, counting a COUPLE pair as one seat.
func (m *SeatMap) LogicalSeatCount() int {
    seen := make(map[string]struct{})
    for _, row := range m.Rows {
        for _, cell := range row {
            if cell != nil {
                seen[cell.SeatCode] = struct{}{}
            }
        }
    }
    return len(seen)
}
