package model

import "time"

// HoldStatus enumerates the states of a seat hold.  There is no
// EXPIRED status on purpose: a HOLDING row whose expires_at has passed
// is simply ignored by readers, so expiry never needs a write.
type HoldStatus string

const (
    HoldHolding HoldStatus = "HOLDING" // temporary claim awaiting payment
    HoldSold    HoldStatus = "SOLD"    // permanent claim after payment
)

// SeatHold is a claim on one logical seat for one showtime.  A hold is
// created in HOLDING state together with its booking, becomes SOLD when
// payment confirms, and is deleted when the booking is cancelled or
// swept after expiry.  The (showtime_id, seat_code) pair is covered by
// a unique key, which is what actually arbitrates concurrent claims.
//
// Fields:
//  ID         – primary key identifier.
//  BookingID  – booking that owns this hold.
//  UserID     – user the hold was created for.
//  ShowtimeID – showtime the claim applies to.
//  RoomID     – room of the showtime (denormalised for sweeping).
//  SeatCode   – logical seat being claimed; one row per COUPLE pair.
//  SeatType   – seat type at claim time.
//  Status     – HOLDING or SOLD.
//  ExpiresAt  – hold deadline; meaningful only while HOLDING.
//  CreatedAt  – creation timestamp.
type SeatHold struct {
    ID         uint64     // seat_holds.id
    BookingID  uint64     // seat_holds.booking_id
    UserID     uint64     // seat_holds.user_id
    ShowtimeID uint64     // seat_holds.showtime_id
    RoomID     uint64     // seat_holds.room_id
    SeatCode   string     // seat_holds.seat_code
    SeatType   SeatType   // seat_holds.seat_type
    Status     HoldStatus // seat_holds.status
    ExpiresAt  time.Time  // seat_holds.expires_at
    CreatedAt  time.Time  // seat_holds.created_at
}

// Active reports whether the hold still claims its seat at the given
// instant.  SOLD holds are permanent; HOLDING holds lapse the moment
// expires_at is reached.
func (h *SeatHold) Active(now time.Time) bool {
    if h.Status == HoldSold {
        return true
    }
    return h.ExpiresAt.After(now)
}
