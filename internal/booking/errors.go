// Package booking implements the seat-hold and booking lifecycle core:
// availability resolution over a room's seat map, seat selection
// validation, and the booking state machine with its time-limited seat
// claims.  Persistence is abstracted behind small store interfaces so
// the exclusivity guarantee can live in the storage layer while the
// rules stay testable in isolation.
package booking

import (
    "errors"
    "fmt"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// Sentinel errors shared between the service, the stores and the HTTP
// layer.  Stores translate their engine-specific failures into these
// values so handlers can map them onto status codes with errors.Is.
var (
    // ErrShowtimeNotFound is returned when the referenced showtime does not exist.
    ErrShowtimeNotFound = errors.New("showtime not found")
    // ErrRoomNotFound is returned when a showtime references a missing room.
    ErrRoomNotFound = errors.New("room not found")
    // ErrBookingNotFound is returned when the referenced booking does not exist.
    ErrBookingNotFound = errors.New("booking not found")
    // ErrUserNotFound is returned when the referenced user does not exist.
    ErrUserNotFound = errors.New("user not found")
    // ErrForbidden is returned when a user operates on a booking they do not own.
    ErrForbidden = errors.New("booking belongs to another user")
    // ErrShowtimeNotBookable is returned when the showtime has started,
    // finished or been cancelled.
    ErrShowtimeNotBookable = errors.New("showtime is not open for booking")
    // ErrPendingBookingExists is returned when the user already has a
    // non-terminal booking for the same showtime.
    ErrPendingBookingExists = errors.New("an active booking already exists for this showtime")
    // ErrSeatClaimConflict is returned when a seat claim loses the
    // storage-level race: a concurrent request inserted an active hold
    // for the same (showtime, seat) first.  Clients should re-fetch the
    // availability map before retrying.
    ErrSeatClaimConflict = errors.New("seat was claimed by a concurrent booking")
    // ErrBookingExpired is returned when a state-changing operation hits
    // a booking whose deadline has already passed.
    ErrBookingExpired = errors.New("booking deadline has passed")
)

// SelectionReason identifies the exact rule a seat selection violated.
type SelectionReason string

const (
    SelectionEmpty        SelectionReason = "EMPTY_SELECTION"      // no seat codes supplied
    SelectionTooMany      SelectionReason = "TOO_MANY_SEATS"       // request exceeds the per-booking maximum
    SelectionBadCode      SelectionReason = "MALFORMED_SEAT_CODE"  // code does not match the room's pattern
    SelectionDuplicate    SelectionReason = "DUPLICATE_SEAT_CODE"  // code listed twice in one request
    SelectionUnknownSeat  SelectionReason = "UNKNOWN_SEAT"         // code not present in the seat map
    SelectionBrokenCouple SelectionReason = "UNPAIRED_COUPLE_SEAT" // couple code not mapped to exactly two cells
    SelectionSeatHeld     SelectionReason = "SEAT_HELD"            // reserved by someone else right now
    SelectionSeatSold     SelectionReason = "SEAT_SOLD"            // already purchased
    SelectionOrphanSeat   SelectionReason = "ORPHAN_WOULD_RESULT"  // selection would strand an unsellable seat
)

// SelectionError reports a failed seat selection.  SeatCode names the
// offending seat whenever one exists so clients can highlight it;
// shape violations that concern the request as a whole leave it empty.
type SelectionError struct {
    Reason   SelectionReason
    SeatCode string
}

func (e *SelectionError) Error() string {
    if e.SeatCode == "" {
        return fmt.Sprintf("invalid seat selection: %s", e.Reason)
    }
    return fmt.Sprintf("invalid seat selection: %s (seat %s)", e.Reason, e.SeatCode)
}

// DataIntegrity reports whether the violation indicates a broken seat
// map rather than a user mistake.  An unpaired couple seat can only
// come from corrupted layout data and should be surfaced as a server
// error, not a 4xx.
func (e *SelectionError) DataIntegrity() bool {
    return e.Reason == SelectionBrokenCouple
}

// TransitionError reports an operation attempted on a booking whose
// current status does not permit it, e.g. confirming a cancelled
// booking.
type TransitionError struct {
    From model.BookingStatus
    Op   string
}

func (e *TransitionError) Error() string {
    return fmt.Sprintf("cannot %s a booking in status %s", e.Op, e.From)
}
