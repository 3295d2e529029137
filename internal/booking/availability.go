package booking

import (
    "time"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// SeatState is the derived per-seat availability state.  It is never
// stored: it is recomputed from the active holds on every read, which
// is what makes hold expiry work without any timer or cleanup write.
type SeatState string

const (
    SeatFree SeatState = "FREE" // no active claim
    SeatHeld SeatState = "HELD" // claimed by an unexpired HOLDING row
    SeatSold SeatState = "SOLD" // claimed by a SOLD row
)

// AvailableSeat annotates one physical grid cell with its resolved
// state for a particular showtime and viewer.  Both cells of a COUPLE
// seat always carry identical annotations because resolution keys on
// the seat code, not the grid position.
type AvailableSeat struct {
    SeatCode  string          `json:"seat_code"`
    SeatType  model.SeatType  `json:"seat_type"`
    State     SeatState       `json:"state"`
    Mine      bool            `json:"mine"`
    Available bool            `json:"available"`
}

// AvailableSeatMap is the per-showtime view over a room's seat map, in
// the same grid shape.  Nil entries mark positions without a seat.
type AvailableSeatMap struct {
    ShowtimeID uint64             `json:"showtime_id"`
    Rows       [][]*AvailableSeat `json:"rows"`
}

// ResolveAvailability computes the availability view of a seat map
// given the hold rows for one showtime.  It is a pure function of its
// inputs: holds that are SOLD or HOLDING with an expiry after now are
// treated as the complete set of claims, and a lapsed HOLDING row is
// indistinguishable from no row at all.  A seat is available to the
// viewer when it is free or when the claim is the viewer's own, so a
// user can always re-select seats they are already holding.
//
// The result must not be cached: hold state changes continuously and
// every availability query and every selection validation needs a
// fresh resolution.
func ResolveAvailability(seatMap *model.SeatMap, holds []model.SeatHold, showtimeID, userID uint64, now time.Time) *AvailableSeatMap {
    claims := make(map[string]*model.SeatHold, len(holds))
    for i := range holds {
        h := &holds[i]
        if !h.Active(now) {
            continue
        }
        // The lifecycle guarantees at most one active claim per seat
        // code; a second one here would mean the unique key was lost.
        claims[h.SeatCode] = h
    }

    rows := make([][]*AvailableSeat, len(seatMap.Rows))
    for ri, row := range seatMap.Rows {
        out := make([]*AvailableSeat, len(row))
        for ci, cell := range row {
            if cell == nil {
                continue
            }
            seat := &AvailableSeat{
                SeatCode: cell.SeatCode,
                SeatType: cell.SeatType,
                State:    SeatFree,
            }
            if h, ok := claims[cell.SeatCode]; ok {
                if h.Status == model.HoldSold {
                    seat.State = SeatSold
                } else {
                    seat.State = SeatHeld
                }
                seat.Mine = h.UserID == userID
            }
            seat.Available = seat.State == SeatFree || seat.Mine
            out[ci] = seat
        }
        rows[ri] = out
    }
    return &AvailableSeatMap{ShowtimeID: showtimeID, Rows: rows}
}

// logicalSeat is one entry of a collapsed row: each seat code appears
// once, in first-seen left-to-right order, so a COUPLE pair counts as
// a single neighbor.
type logicalSeat struct {
    code      string
    seatType  model.SeatType
    available bool
    cells     int
}

// logicalRows collapses every grid row to its distinct seat codes in
// first-seen order.  Positions without a seat are skipped, so two
// seats separated only by an aisle gap are still neighbors.
func (m *AvailableSeatMap) logicalRows() [][]logicalSeat {
    rows := make([][]logicalSeat, 0, len(m.Rows))
    for _, row := range m.Rows {
        var logical []logicalSeat
        index := make(map[string]int)
        for _, seat := range row {
            if seat == nil {
                continue
            }
            if i, ok := index[seat.SeatCode]; ok {
                logical[i].cells++
                continue
            }
            index[seat.SeatCode] = len(logical)
            logical = append(logical, logicalSeat{
                code:      seat.SeatCode,
                seatType:  seat.SeatType,
                available: seat.Available,
                cells:     1,
            })
        }
        rows = append(rows, logical)
    }
    return rows
}
