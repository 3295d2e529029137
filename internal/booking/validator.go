package booking

import (
    "regexp"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// DefaultSeatCodePattern matches the room seat codes used across the
// platform: one or two row letters followed by a number without a
// leading zero, e.g. "A1", "K12", "AA3".
var DefaultSeatCodePattern = regexp.MustCompile(`^[A-Z]{1,2}[1-9][0-9]{0,2}$`)

// SelectionRules configures the selection validator.
type SelectionRules struct {
    // MaxSeats caps the number of logical seats in one booking.
    MaxSeats int
    // CodePattern validates the format of requested seat codes.  When
    // nil, DefaultSeatCodePattern is used.
    CodePattern *regexp.Regexp
}

func (r SelectionRules) pattern() *regexp.Regexp {
    if r.CodePattern != nil {
        return r.CodePattern
    }
    return DefaultSeatCodePattern
}

// ValidateSelection checks a list of requested seat codes against a
// freshly resolved availability map.  The checks run in a fixed order
// and the first violation wins:
//
//  1. request shape: non-empty, within MaxSeats, well-formed codes, no
//     duplicates;
//  2. existence and couple pairing: every code exists in the map and a
//     COUPLE code maps to exactly two cells; a partial couple is a
//     seat map corruption and fails loudly;
//  3. availability: every requested seat is available to the caller,
//     with HELD and SOLD reported as distinct reasons;
//  4. no-orphan rule: the selection must not strand a remaining
//     available seat between two blocked neighbors in its row.
//
// Validation alone cannot guarantee exclusivity: two requests may both
// pass before either inserts its holds.  The final arbiter is the
// unique claim key enforced by the hold store at insert time.
func ValidateSelection(m *AvailableSeatMap, seatCodes []string, rules SelectionRules) error {
    // 1. Request shape.
    if len(seatCodes) == 0 {
        return &SelectionError{Reason: SelectionEmpty}
    }
    if rules.MaxSeats > 0 && len(seatCodes) > rules.MaxSeats {
        return &SelectionError{Reason: SelectionTooMany}
    }
    pattern := rules.pattern()
    seen := make(map[string]struct{}, len(seatCodes))
    for _, code := range seatCodes {
        if !pattern.MatchString(code) {
            return &SelectionError{Reason: SelectionBadCode, SeatCode: code}
        }
        if _, dup := seen[code]; dup {
            return &SelectionError{Reason: SelectionDuplicate, SeatCode: code}
        }
        seen[code] = struct{}{}
    }

    // Collapse the map to one entry per logical seat code, first
    // occurrence wins scanning each row left to right.  Cell counts
    // are accumulated across the whole map so a couple pair split over
    // two rows is still detected as malformed.
    type logicalEntry struct {
        seat  *AvailableSeat
        cells int
    }
    logical := make(map[string]*logicalEntry)
    for _, row := range m.Rows {
        for _, seat := range row {
            if seat == nil {
                continue
            }
            if e, ok := logical[seat.SeatCode]; ok {
                e.cells++
                continue
            }
            logical[seat.SeatCode] = &logicalEntry{seat: seat, cells: 1}
        }
    }

    // 2. Existence and couple pairing.
    for _, code := range seatCodes {
        entry, ok := logical[code]
        if !ok {
            return &SelectionError{Reason: SelectionUnknownSeat, SeatCode: code}
        }
        if entry.seat.SeatType == model.SeatTypeCouple && entry.cells != 2 {
            return &SelectionError{Reason: SelectionBrokenCouple, SeatCode: code}
        }
    }

    // 3. Availability, with the blocking claim's state surfaced so the
    // client can tell a temporary hold from a completed sale.
    for _, code := range seatCodes {
        seat := logical[code].seat
        if seat.Available {
            continue
        }
        if seat.State == SeatSold {
            return &SelectionError{Reason: SelectionSeatSold, SeatCode: code}
        }
        return &SelectionError{Reason: SelectionSeatHeld, SeatCode: code}
    }

    // 4. No-orphan rule over logical rows.  After removing the selected
    // seats, no remaining available seat may end up with both of its
    // actual neighbors blocked (unavailable or selected).  A row
    // boundary never blocks, so an edge seat with one blocked neighbor
    // is fine.
    if code, orphaned := firstOrphan(m.logicalRows(), seen); orphaned {
        return &SelectionError{Reason: SelectionOrphanSeat, SeatCode: code}
    }
    return nil
}

// firstOrphan scans the collapsed rows for a seat the given selection
// would strand and returns its code.
func firstOrphan(rows [][]logicalSeat, selected map[string]struct{}) (string, bool) {
    blocked := func(row []logicalSeat, i int) bool {
        if i < 0 || i >= len(row) {
            return false // row boundary, never blocks
        }
        if _, sel := selected[row[i].code]; sel {
            return true
        }
        return !row[i].available
    }
    for _, row := range rows {
        for i, seat := range row {
            if _, sel := selected[seat.code]; sel {
                continue
            }
            if !seat.available {
                continue
            }
            // Only seats with two actual neighbors can be orphaned.
            if i == 0 || i == len(row)-1 {
                continue
            }
            if blocked(row, i-1) && blocked(row, i+1) {
                return seat.code, true
            }
        }
    }
    return "", false
}
