package booking

import (
    "context"
    "database/sql"
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// TxRunner executes a function inside a storage transaction.  The
// MySQL implementation begins a transaction, rolls back on error and
// commits otherwise; test fakes may pass a nil tx straight through.
type TxRunner interface {
    RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// ShowtimeStore provides read access to showtimes.
type ShowtimeStore interface {
    GetShowtime(ctx context.Context, id uint64) (*model.Showtime, error)
}

// RoomStore provides read access to rooms and their static seat maps.
type RoomStore interface {
    GetRoom(ctx context.Context, id uint64) (*model.Room, error)
    GetSeatMap(ctx context.Context, roomID uint64) (*model.SeatMap, error)
}

// HoldStore persists seat holds.  CreateHoldsTx must enforce the one
// active claim per (showtime, seat code) invariant atomically and
// return ErrSeatClaimConflict when an insert loses that race; a
// read-then-write check is not an acceptable substitute.
type HoldStore interface {
    // ActiveHolds returns the SOLD and unexpired HOLDING rows for a
    // showtime; lapsed HOLDING rows are never returned.
    ActiveHolds(ctx context.Context, showtimeID uint64, now time.Time) ([]model.SeatHold, error)
    // ActiveHoldsTx is ActiveHolds inside a claiming transaction.
    ActiveHoldsTx(ctx context.Context, tx *sql.Tx, showtimeID uint64, now time.Time) ([]model.SeatHold, error)
    // PurgeExpiredTx deletes lapsed HOLDING rows for a showtime so the
    // unique claim key does not keep blocking on dead rows.
    PurgeExpiredTx(ctx context.Context, tx *sql.Tx, showtimeID uint64, now time.Time) (int64, error)
    // CreateHoldsTx inserts all holds or none.
    CreateHoldsTx(ctx context.Context, tx *sql.Tx, holds []model.SeatHold) error
    // MarkSoldTx flips every hold of a booking to SOLD.
    MarkSoldTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error
    // RestampTx moves the expiry of a booking's HOLDING rows.
    RestampTx(ctx context.Context, tx *sql.Tx, bookingID uint64, expiresAt time.Time) error
    // DeleteByBookingTx releases all holds of a booking.
    DeleteByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (int64, error)
}

// BookingStore persists bookings and their seat snapshots.
type BookingStore interface {
    // InsertBookingTx inserts the booking and its seats, filling b.ID.
    InsertBookingTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error
    // GetForUpdateTx loads a booking by public id with its seats,
    // locking the row for the duration of the transaction.
    GetForUpdateTx(ctx context.Context, tx *sql.Tx, publicID string) (*model.Booking, error)
    // HasActiveBookingTx reports whether the user already has an
    // unexpired DRAFT or PENDING_PAYMENT booking for the showtime.
    HasActiveBookingTx(ctx context.Context, tx *sql.Tx, userID, showtimeID uint64, now time.Time) (bool, error)
    // UpdateStatusTx writes a new status and deadline (nil clears it).
    UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.BookingStatus, expiresAt *time.Time) error
    // StaleForUpdateTx loads and locks every non-terminal booking whose
    // deadline has passed, for the sweeper.
    StaleForUpdateTx(ctx context.Context, tx *sql.Tx, now time.Time, limit int) ([]model.Booking, error)
    // GetByPublicID loads a booking with its seats, without locking.
    GetByPublicID(ctx context.Context, publicID string) (*model.Booking, error)
    // ListByUser returns the user's bookings, newest first.
    ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
}

// PriceResolver supplies the unit price snapshotted onto each booking
// seat at creation time.
type PriceResolver interface {
    PriceFor(seatType model.SeatType, roomType model.RoomType, at time.Time) (uint32, error)
}

// Config carries the booking policy knobs.
type Config struct {
    // HoldTTL is how long a DRAFT booking and its holds live.
    HoldTTL time.Duration
    // PaymentTTL is the payment window granted on DRAFT → PENDING_PAYMENT.
    PaymentTTL time.Duration
    // MaxSeatsPerBooking caps one booking's logical seat count.
    MaxSeatsPerBooking int
}

// Service owns the booking lifecycle.  All state-changing operations
// run inside a single storage transaction; the seat-claim race is
// decided by the hold store's unique key, not by the validation reads.
type Service struct {
    tx        TxRunner
    showtimes ShowtimeStore
    rooms     RoomStore
    holds     HoldStore
    bookings  BookingStore
    prices    PriceResolver
    rules     SelectionRules
    cfg       Config

    // now is swappable in tests.
    now func() time.Time
}

// NewService wires a booking service.  All dependencies must be
// non-nil.
func NewService(tx TxRunner, showtimes ShowtimeStore, rooms RoomStore, holds HoldStore, bookings BookingStore, prices PriceResolver, cfg Config) *Service {
    if tx == nil || showtimes == nil || rooms == nil || holds == nil || bookings == nil || prices == nil {
        panic("nil dependency passed to booking.NewService")
    }
    return &Service{
        tx:        tx,
        showtimes: showtimes,
        rooms:     rooms,
        holds:     holds,
        bookings:  bookings,
        prices:    prices,
        rules:     SelectionRules{MaxSeats: cfg.MaxSeatsPerBooking},
        cfg:       cfg,
        now:       time.Now,
    }
}

// AvailableSeats resolves the current seat availability of a showtime
// as seen by the given user.  The result is computed fresh on every
// call; holds that expired a millisecond ago are already gone from it.
func (s *Service) AvailableSeats(ctx context.Context, showtimeID, userID uint64) (*AvailableSeatMap, error) {
    now := s.now().UTC()
    show, err := s.showtimes.GetShowtime(ctx, showtimeID)
    if err != nil {
        return nil, err
    }
    seatMap, err := s.rooms.GetSeatMap(ctx, show.RoomID)
    if err != nil {
        return nil, err
    }
    holds, err := s.holds.ActiveHolds(ctx, showtimeID, now)
    if err != nil {
        return nil, err
    }
    return ResolveAvailability(seatMap, holds, showtimeID, userID, now), nil
}

// CreateBooking validates the requested seats against a fresh
// availability map and, in one transaction, inserts a DRAFT booking
// plus one HOLDING seat hold per logical seat.  Booking and holds are
// all-or-nothing: when any hold insert hits an existing active claim
// the whole transaction rolls back and ErrSeatClaimConflict is
// returned.  Lapsed HOLDING rows for the showtime are purged first so
// they cannot block the unique claim key.
func (s *Service) CreateBooking(ctx context.Context, showtimeID, userID uint64, seatCodes []string) (*model.Booking, error) {
    now := s.now().UTC()

    show, err := s.showtimes.GetShowtime(ctx, showtimeID)
    if err != nil {
        return nil, err
    }
    if !show.Bookable(now) {
        return nil, ErrShowtimeNotBookable
    }
    room, err := s.rooms.GetRoom(ctx, show.RoomID)
    if err != nil {
        return nil, err
    }
    seatMap, err := s.rooms.GetSeatMap(ctx, show.RoomID)
    if err != nil {
        return nil, err
    }

    expiresAt := now.Add(s.cfg.HoldTTL)
    b := &model.Booking{
        PublicID:   uuid.NewString(),
        UserID:     userID,
        ShowtimeID: showtimeID,
        Status:     model.BookingDraft,
        ExpiresAt:  &expiresAt,
    }

    err = s.tx.RunInTx(ctx, func(tx *sql.Tx) error {
        if _, err := s.holds.PurgeExpiredTx(ctx, tx, showtimeID, now); err != nil {
            return err
        }
        exists, err := s.bookings.HasActiveBookingTx(ctx, tx, userID, showtimeID, now)
        if err != nil {
            return err
        }
        if exists {
            return ErrPendingBookingExists
        }

        activeHolds, err := s.holds.ActiveHoldsTx(ctx, tx, showtimeID, now)
        if err != nil {
            return err
        }
        avail := ResolveAvailability(seatMap, activeHolds, showtimeID, userID, now)
        if err := ValidateSelection(avail, seatCodes, s.rules); err != nil {
            return err
        }

        seats, total, err := s.snapshotSeats(avail, seatCodes, room.RoomType, show.StartsAt)
        if err != nil {
            return err
        }
        b.Seats = seats
        b.BaseAmountCents = total
        b.FinalAmountCents = total - b.DiscountAmountCents

        if err := s.bookings.InsertBookingTx(ctx, tx, b); err != nil {
            return err
        }
        holds := make([]model.SeatHold, 0, len(seats))
        for _, seat := range seats {
            holds = append(holds, model.SeatHold{
                BookingID:  b.ID,
                UserID:     userID,
                ShowtimeID: showtimeID,
                RoomID:     show.RoomID,
                SeatCode:   seat.SeatCode,
                SeatType:   seat.SeatType,
                Status:     model.HoldHolding,
                ExpiresAt:  expiresAt,
            })
        }
        return s.holds.CreateHoldsTx(ctx, tx, holds)
    })
    if err != nil {
        return nil, err
    }
    return b, nil
}

// snapshotSeats prices each requested logical seat and builds the
// immutable per-seat snapshot stored with the booking.
func (s *Service) snapshotSeats(avail *AvailableSeatMap, seatCodes []string, roomType model.RoomType, startsAt time.Time) ([]model.BookingSeat, uint32, error) {
    types := make(map[string]model.SeatType)
    for _, row := range avail.Rows {
        for _, seat := range row {
            if seat != nil {
                types[seat.SeatCode] = seat.SeatType
            }
        }
    }
    seats := make([]model.BookingSeat, 0, len(seatCodes))
    var total uint32
    for _, code := range seatCodes {
        price, err := s.prices.PriceFor(types[code], roomType, startsAt)
        if err != nil {
            return nil, 0, err
        }
        seats = append(seats, model.BookingSeat{
            SeatCode:       code,
            SeatType:       types[code],
            UnitPriceCents: price,
        })
        total += price
    }
    return seats, total, nil
}

// StartPayment moves a DRAFT booking to PENDING_PAYMENT and opens the
// payment window.  Every hold of the booking is re-stamped to the new
// deadline in the same transaction, so a seat claim can never outlive
// or undercut its booking.
func (s *Service) StartPayment(ctx context.Context, publicID string, userID uint64) (*model.Booking, error) {
    now := s.now().UTC()
    var out *model.Booking
    err := s.tx.RunInTx(ctx, func(tx *sql.Tx) error {
        b, err := s.bookings.GetForUpdateTx(ctx, tx, publicID)
        if err != nil {
            return err
        }
        if b.UserID != userID {
            return ErrForbidden
        }
        if b.Status != model.BookingDraft {
            return &TransitionError{From: b.Status, Op: "start payment for"}
        }
        if b.DeadlinePassed(now) {
            return ErrBookingExpired
        }
        deadline := now.Add(s.cfg.PaymentTTL)
        if err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, model.BookingPendingPayment, &deadline); err != nil {
            return err
        }
        if err := s.holds.RestampTx(ctx, tx, b.ID, deadline); err != nil {
            return err
        }
        b.Status = model.BookingPendingPayment
        b.ExpiresAt = &deadline
        out = b
        return nil
    })
    if err != nil {
        return nil, err
    }
    return out, nil
}

// ConfirmBooking applies an external payment-success signal.  The call
// is idempotent: confirming an already CONFIRMED booking returns it
// unchanged.  Payment success is authoritative, so the holds are
// flipped to SOLD without looking at their expiry: a confirmation
// racing the expiry instant must never lose to the lazy expiry read.
func (s *Service) ConfirmBooking(ctx context.Context, publicID string) (*model.Booking, error) {
    var out *model.Booking
    err := s.tx.RunInTx(ctx, func(tx *sql.Tx) error {
        b, err := s.bookings.GetForUpdateTx(ctx, tx, publicID)
        if err != nil {
            return err
        }
        if b.Status == model.BookingConfirmed {
            out = b // duplicate payment signal, nothing to do
            return nil
        }
        if b.Status != model.BookingPendingPayment {
            return &TransitionError{From: b.Status, Op: "confirm"}
        }
        if err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, model.BookingConfirmed, nil); err != nil {
            return err
        }
        if err := s.holds.MarkSoldTx(ctx, tx, b.ID); err != nil {
            return err
        }
        b.Status = model.BookingConfirmed
        b.ExpiresAt = nil
        out = b
        return nil
    })
    if err != nil {
        return nil, err
    }
    return out, nil
}

// CancelBooking cancels a DRAFT or PENDING_PAYMENT booking on the
// owner's request and deletes its holds, so the seats resolve as FREE
// immediately instead of waiting out the hold expiry.
func (s *Service) CancelBooking(ctx context.Context, publicID string, userID uint64) (*model.Booking, error) {
    var out *model.Booking
    err := s.tx.RunInTx(ctx, func(tx *sql.Tx) error {
        b, err := s.bookings.GetForUpdateTx(ctx, tx, publicID)
        if err != nil {
            return err
        }
        if b.UserID != userID {
            return ErrForbidden
        }
        if !b.Status.Cancellable() {
            return &TransitionError{From: b.Status, Op: "cancel"}
        }
        if err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, model.BookingCancelled, nil); err != nil {
            return err
        }
        if _, err := s.holds.DeleteByBookingTx(ctx, tx, b.ID); err != nil {
            return err
        }
        b.Status = model.BookingCancelled
        b.ExpiresAt = nil
        out = b
        return nil
    })
    if err != nil {
        return nil, err
    }
    return out, nil
}

// sweepBatchSize bounds one sweep transaction.
const sweepBatchSize = 500

// SweepExpired flips every non-terminal booking whose deadline has
// passed to EXPIRED and deletes its hold rows.  This is storage
// hygiene, not a correctness mechanism: readers already treat lapsed
// holds as free and claimers purge them before inserting.  It returns
// the bookings it expired so callers can publish events or report the
// count.
func (s *Service) SweepExpired(ctx context.Context) ([]model.Booking, error) {
    now := s.now().UTC()
    var swept []model.Booking
    err := s.tx.RunInTx(ctx, func(tx *sql.Tx) error {
        stale, err := s.bookings.StaleForUpdateTx(ctx, tx, now, sweepBatchSize)
        if err != nil {
            return err
        }
        for i := range stale {
            b := &stale[i]
            if err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, model.BookingExpired, nil); err != nil {
                return err
            }
            if _, err := s.holds.DeleteByBookingTx(ctx, tx, b.ID); err != nil {
                return err
            }
            b.Status = model.BookingExpired
            b.ExpiresAt = nil
        }
        swept = stale
        return nil
    })
    if err != nil {
        return nil, err
    }
    return swept, nil
}

// GetBooking loads one of the user's bookings by public id.
func (s *Service) GetBooking(ctx context.Context, publicID string, userID uint64) (*model.Booking, error) {
    b, err := s.bookings.GetByPublicID(ctx, publicID)
    if err != nil {
        return nil, err
    }
    if b.UserID != userID {
        return nil, ErrForbidden
    }
    return b, nil
}

// ListBookings returns all bookings of a user, newest first.
func (s *Service) ListBookings(ctx context.Context, userID uint64) ([]model.Booking, error) {
    return s.bookings.ListByUser(ctx, userID)
}
