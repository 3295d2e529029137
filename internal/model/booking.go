package model

import "time"

// BookingStatus enumerates the lifecycle states of a booking.  The
// transition graph is fixed: DRAFT → PENDING_PAYMENT → CONFIRMED on the
// happy path, DRAFT or PENDING_PAYMENT → CANCELLED on user request, and
// any pre-CONFIRMED state → EXPIRED once its deadline passes.
// CONFIRMED, CANCELLED and EXPIRED are terminal.
type BookingStatus string

const (
    BookingDraft          BookingStatus = "DRAFT"
    BookingPendingPayment BookingStatus = "PENDING_PAYMENT"
    BookingConfirmed      BookingStatus = "CONFIRMED"
    BookingCancelled      BookingStatus = "CANCELLED"
    BookingExpired        BookingStatus = "EXPIRED"
)

// Terminal reports whether s permits no further transitions.
func (s BookingStatus) Terminal() bool {
    switch s {
    case BookingConfirmed, BookingCancelled, BookingExpired:
        return true
    case BookingDraft, BookingPendingPayment:
        return false
    }
    return false
}

// Cancellable reports whether a user may still cancel a booking in
// state s.  Only the two non-terminal states qualify.
func (s BookingStatus) Cancellable() bool {
    return s == BookingDraft || s == BookingPendingPayment
}

// Booking is the aggregate root of the purchase flow.  It is created
// when a user claims seats for a showtime and is mutated only through
// the defined state transitions.  Terminal bookings are never deleted;
// they remain for history and reporting.
//
// Fields:
//  ID                  – primary key identifier.
//  PublicID            – UUID surfaced to clients instead of the row id.
//  UserID              – user who owns the booking.
//  ShowtimeID          – showtime being booked.
//  Status              – lifecycle state, see BookingStatus.
//  ExpiresAt           – deadline, meaningful only in DRAFT and
//                        PENDING_PAYMENT; nil once confirmed.
//  Seats               – per-seat price snapshot taken at creation time,
//                        immutable thereafter.
//  BaseAmountCents     – sum of unit prices.
//  DiscountAmountCents – promotion discount (0 without a promotion).
//  FinalAmountCents    – base minus discount.
//  CreatedAt           – creation timestamp.
//  UpdatedAt           – last transition timestamp.
type Booking struct {
    ID                  uint64        // bookings.id
    PublicID            string        // bookings.public_id
    UserID              uint64        // bookings.user_id
    ShowtimeID          uint64        // bookings.showtime_id
    Status              BookingStatus // bookings.status
    ExpiresAt           *time.Time    // bookings.expires_at (nullable)
    Seats               []BookingSeat // bookings -> booking_seats
    BaseAmountCents     uint32        // bookings.base_amount_cents
    DiscountAmountCents uint32        // bookings.discount_amount_cents
    FinalAmountCents    uint32        // bookings.final_amount_cents
    CreatedAt           time.Time     // bookings.created_at
    UpdatedAt           time.Time     // bookings.updated_at
}

// DeadlinePassed reports whether the booking's expiry deadline lies at
// or before now.  Bookings without a deadline never expire.
func (b *Booking) DeadlinePassed(now time.Time) bool {
    return b.ExpiresAt != nil && !b.ExpiresAt.After(now)
}

// BookingSeat is one logical seat inside a booking with its price
// snapshotted at creation time.  A COUPLE seat is a single BookingSeat
// even though it covers two grid cells.
//
// Fields:
//  ID             – primary key identifier.
//  BookingID      – owning booking.
//  SeatCode       – logical seat code within the room.
//  SeatType       – seat type at snapshot time.
//  UnitPriceCents – price charged for this seat.
type BookingSeat struct {
    ID             uint64   // booking_seats.id
    BookingID      uint64   // booking_seats.booking_id
    SeatCode       string   // booking_seats.seat_code
    SeatType       SeatType // booking_seats.seat_type
    UnitPriceCents uint32   // booking_seats.unit_price_cents
}
