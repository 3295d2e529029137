package booking

import (
    "context"
    "database/sql"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
    "github.com/iliyamo/cinema-ticket-booking/internal/pricing"
)

// memStore is an in-memory stand-in for the MySQL repositories.  Its
// RunInTx serializes transactions under one mutex and restores a
// snapshot on error, which models the atomicity the service relies
// on; the Tx-suffixed methods assume the transaction lock is held and
// receive a nil *sql.Tx.
type memStore struct {
    mu        sync.Mutex
    holds     []model.SeatHold
    bookings  []model.Booking
    nextHold  uint64
    nextBook  uint64
    showtimes map[uint64]model.Showtime
    rooms     map[uint64]model.Room
    seatMaps  map[uint64]*model.SeatMap
}

func (s *memStore) RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    holds := append([]model.SeatHold(nil), s.holds...)
    bookings := make([]model.Booking, len(s.bookings))
    for i, b := range s.bookings {
        bookings[i] = b
        bookings[i].Seats = append([]model.BookingSeat(nil), b.Seats...)
    }
    if err := fn(nil); err != nil {
        s.holds = holds
        s.bookings = bookings
        return err
    }
    return nil
}

// ----- ShowtimeStore / RoomStore -----

func (s *memStore) GetShowtime(ctx context.Context, id uint64) (*model.Showtime, error) {
    if st, ok := s.showtimes[id]; ok {
        return &st, nil
    }
    return nil, ErrShowtimeNotFound
}

func (s *memStore) GetRoom(ctx context.Context, id uint64) (*model.Room, error) {
    if r, ok := s.rooms[id]; ok {
        return &r, nil
    }
    return nil, ErrRoomNotFound
}

func (s *memStore) GetSeatMap(ctx context.Context, roomID uint64) (*model.SeatMap, error) {
    if m, ok := s.seatMaps[roomID]; ok {
        return m, nil
    }
    return nil, ErrRoomNotFound
}

// ----- HoldStore -----

func (s *memStore) ActiveHolds(ctx context.Context, showtimeID uint64, now time.Time) ([]model.SeatHold, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.activeHolds(showtimeID, now), nil
}

func (s *memStore) ActiveHoldsTx(ctx context.Context, tx *sql.Tx, showtimeID uint64, now time.Time) ([]model.SeatHold, error) {
    return s.activeHolds(showtimeID, now), nil
}

func (s *memStore) activeHolds(showtimeID uint64, now time.Time) []model.SeatHold {
    var out []model.SeatHold
    for _, h := range s.holds {
        if h.ShowtimeID == showtimeID && h.Active(now) {
            out = append(out, h)
        }
    }
    return out
}

func (s *memStore) PurgeExpiredTx(ctx context.Context, tx *sql.Tx, showtimeID uint64, now time.Time) (int64, error) {
    var kept []model.SeatHold
    var n int64
    for _, h := range s.holds {
        if h.ShowtimeID == showtimeID && h.Status == model.HoldHolding && !h.ExpiresAt.After(now) {
            n++
            continue
        }
        kept = append(kept, h)
    }
    s.holds = kept
    return n, nil
}

func (s *memStore) CreateHoldsTx(ctx context.Context, tx *sql.Tx, holds []model.SeatHold) error {
    // Mimics the unique (showtime_id, seat_code) key: any existing row
    // conflicts, active or not.
    for _, nh := range holds {
        for _, h := range s.holds {
            if h.ShowtimeID == nh.ShowtimeID && h.SeatCode == nh.SeatCode {
                return ErrSeatClaimConflict
            }
        }
    }
    for _, nh := range holds {
        s.nextHold++
        nh.ID = s.nextHold
        s.holds = append(s.holds, nh)
    }
    return nil
}

func (s *memStore) MarkSoldTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
    for i := range s.holds {
        if s.holds[i].BookingID == bookingID {
            s.holds[i].Status = model.HoldSold
        }
    }
    return nil
}

func (s *memStore) RestampTx(ctx context.Context, tx *sql.Tx, bookingID uint64, expiresAt time.Time) error {
    for i := range s.holds {
        if s.holds[i].BookingID == bookingID && s.holds[i].Status == model.HoldHolding {
            s.holds[i].ExpiresAt = expiresAt
        }
    }
    return nil
}

func (s *memStore) DeleteByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (int64, error) {
    var kept []model.SeatHold
    var n int64
    for _, h := range s.holds {
        if h.BookingID == bookingID {
            n++
            continue
        }
        kept = append(kept, h)
    }
    s.holds = kept
    return n, nil
}

// ----- BookingStore -----

func (s *memStore) InsertBookingTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
    s.nextBook++
    b.ID = s.nextBook
    stored := *b
    stored.Seats = append([]model.BookingSeat(nil), b.Seats...)
    s.bookings = append(s.bookings, stored)
    return nil
}

func (s *memStore) GetForUpdateTx(ctx context.Context, tx *sql.Tx, publicID string) (*model.Booking, error) {
    return s.find(publicID)
}

func (s *memStore) find(publicID string) (*model.Booking, error) {
    for i := range s.bookings {
        if s.bookings[i].PublicID == publicID {
            b := s.bookings[i]
            b.Seats = append([]model.BookingSeat(nil), b.Seats...)
            return &b, nil
        }
    }
    return nil, ErrBookingNotFound
}

func (s *memStore) HasActiveBookingTx(ctx context.Context, tx *sql.Tx, userID, showtimeID uint64, now time.Time) (bool, error) {
    for _, b := range s.bookings {
        if b.UserID == userID && b.ShowtimeID == showtimeID && !b.Status.Terminal() && !b.DeadlinePassed(now) {
            return true, nil
        }
    }
    return false, nil
}

func (s *memStore) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.BookingStatus, expiresAt *time.Time) error {
    for i := range s.bookings {
        if s.bookings[i].ID == id {
            s.bookings[i].Status = status
            s.bookings[i].ExpiresAt = expiresAt
            return nil
        }
    }
    return ErrBookingNotFound
}

func (s *memStore) StaleForUpdateTx(ctx context.Context, tx *sql.Tx, now time.Time, limit int) ([]model.Booking, error) {
    var out []model.Booking
    for _, b := range s.bookings {
        if !b.Status.Terminal() && b.DeadlinePassed(now) {
            out = append(out, b)
            if len(out) == limit {
                break
            }
        }
    }
    return out, nil
}

func (s *memStore) GetByPublicID(ctx context.Context, publicID string) (*model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.find(publicID)
}

func (s *memStore) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    var out []model.Booking
    for i := len(s.bookings) - 1; i >= 0; i-- {
        if s.bookings[i].UserID == userID {
            out = append(out, s.bookings[i])
        }
    }
    return out, nil
}

// ----- fixture -----

const (
    testShowtimeID = uint64(7)
    testRoomID     = uint64(1)
)

type env struct {
    store *memStore
    svc   *Service
    now   time.Time
}

func newEnv(t *testing.T) *env {
    t.Helper()
    now := at("2026-09-01T12:00:00Z")
    store := &memStore{
        showtimes: map[uint64]model.Showtime{
            testShowtimeID: {
                ID:       testShowtimeID,
                RoomID:   testRoomID,
                Status:   model.ShowtimeScheduled,
                StartsAt: now.Add(3 * time.Hour),
                EndsAt:   now.Add(5 * time.Hour),
            },
        },
        rooms: map[uint64]model.Room{
            testRoomID: {ID: testRoomID, Name: "Room 1", RoomType: model.RoomStandard, RowCount: 2, ColCount: 5},
        },
        seatMaps: map[uint64]*model.SeatMap{
            testRoomID: grid(
                []*model.SeatCell{
                    cell("A1", model.SeatTypeNormal),
                    cell("A2", model.SeatTypeNormal),
                    cell("A3", model.SeatTypeNormal),
                    cell("A4", model.SeatTypeNormal),
                },
                []*model.SeatCell{
                    cell("B1", model.SeatTypeVIP),
                    cell("B2", model.SeatTypeVIP),
                    nil,
                    cell("C1", model.SeatTypeCouple),
                    cell("C1", model.SeatTypeCouple),
                },
            ),
        },
    }
    prices := pricing.NewResolver([]pricing.Rule{
        {RoomType: model.RoomStandard, SeatType: model.SeatTypeNormal, PriceCents: 1000},
        {RoomType: model.RoomStandard, SeatType: model.SeatTypeVIP, PriceCents: 1500},
        {RoomType: model.RoomStandard, SeatType: model.SeatTypeCouple, PriceCents: 1800},
    }, pricing.Surcharges{})

    svc := NewService(store, store, store, store, store, prices, Config{
        HoldTTL:            5 * time.Minute,
        PaymentTTL:         15 * time.Minute,
        MaxSeatsPerBooking: 4,
    })
    e := &env{store: store, svc: svc, now: now}
    e.setNow(now)
    return e
}

func (e *env) setNow(tm time.Time) {
    e.now = tm
    e.svc.now = func() time.Time { return tm }
}

func (e *env) advance(d time.Duration) { e.setNow(e.now.Add(d)) }

func TestCreateBooking(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    b, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1", "C1"})
    require.NoError(t, err)

    assert.Equal(t, model.BookingDraft, b.Status)
    assert.NotEmpty(t, b.PublicID)
    require.NotNil(t, b.ExpiresAt)
    assert.Equal(t, e.now.Add(5*time.Minute), *b.ExpiresAt)
    assert.Equal(t, uint32(2800), b.BaseAmountCents)
    assert.Equal(t, uint32(0), b.DiscountAmountCents)
    assert.Equal(t, uint32(2800), b.FinalAmountCents)
    require.Len(t, b.Seats, 2)

    // One hold per logical seat, the couple included.
    require.Len(t, e.store.holds, 2)
    for _, h := range e.store.holds {
        assert.Equal(t, model.HoldHolding, h.Status)
        assert.Equal(t, b.ID, h.BookingID)
        assert.Equal(t, *b.ExpiresAt, h.ExpiresAt)
    }
}

func TestCreateBooking_ShowtimeChecks(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    _, err := e.svc.CreateBooking(ctx, 999, 1, []string{"A1"})
    assert.ErrorIs(t, err, ErrShowtimeNotFound)

    // A showtime that already started takes no new bookings.
    e.advance(4 * time.Hour)
    _, err = e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    assert.ErrorIs(t, err, ErrShowtimeNotBookable)
}

func TestCreateBooking_OneActivePerUserAndShowtime(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    _, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    require.NoError(t, err)

    _, err = e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A3"})
    assert.ErrorIs(t, err, ErrPendingBookingExists)
}

func TestCreateBooking_SeatContention(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    var wg sync.WaitGroup
    errs := make([]error, 8)
    for i := range errs {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, errs[i] = e.svc.CreateBooking(ctx, testShowtimeID, uint64(10+i), []string{"A1"})
        }(i)
    }
    wg.Wait()

    won := 0
    for _, err := range errs {
        if err == nil {
            won++
            continue
        }
        // Losers fail either at validation (seat already held) or at
        // the unique-key insert, depending on interleaving.
        var sel *SelectionError
        if errors.As(err, &sel) {
            assert.Equal(t, SelectionSeatHeld, sel.Reason)
            continue
        }
        assert.ErrorIs(t, err, ErrSeatClaimConflict)
    }
    assert.Equal(t, 1, won, "exactly one request claims the seat")
    require.Len(t, e.store.holds, 1)
}

func TestCreateBooking_RolledBackOnClaimConflict(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()
    svc := NewService(e.store, e.store, e.store, conflictHolds{e.store}, e.store, e.svc.prices, e.svc.cfg)
    svc.now = e.svc.now

    _, err := svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    assert.ErrorIs(t, err, ErrSeatClaimConflict)
    assert.Empty(t, e.store.bookings, "booking insert must roll back with the failed holds")
}

// conflictHolds fails every insert the way a lost unique-key race does.
type conflictHolds struct{ *memStore }

func (c conflictHolds) CreateHoldsTx(ctx context.Context, tx *sql.Tx, holds []model.SeatHold) error {
    return ErrSeatClaimConflict
}

func TestCreateBooking_ReclaimsExpiredHold(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    _, err := e.svc.CreateBooking(ctx, testShowtimeID, 2, []string{"A1"})
    require.NoError(t, err)

    // The hold lapses; the booking row is still DRAFT but its claim is
    // gone, so another user takes the seat without waiting for a sweep.
    e.advance(6 * time.Minute)
    b, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    require.NoError(t, err)
    assert.Equal(t, uint64(1), b.UserID)
    require.Len(t, e.store.holds, 1)
    assert.Equal(t, b.ID, e.store.holds[0].BookingID)
}

func TestStartPayment(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    b, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1", "A2"})
    require.NoError(t, err)

    e.advance(2 * time.Minute)
    out, err := e.svc.StartPayment(ctx, b.PublicID, 1)
    require.NoError(t, err)
    assert.Equal(t, model.BookingPendingPayment, out.Status)
    require.NotNil(t, out.ExpiresAt)
    assert.Equal(t, e.now.Add(15*time.Minute), *out.ExpiresAt)

    // The holds move to the payment deadline with the booking.
    for _, h := range e.store.holds {
        assert.Equal(t, *out.ExpiresAt, h.ExpiresAt)
    }
}

func TestStartPayment_Guards(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    b, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    require.NoError(t, err)

    _, err = e.svc.StartPayment(ctx, "no-such-id", 1)
    assert.ErrorIs(t, err, ErrBookingNotFound)

    _, err = e.svc.StartPayment(ctx, b.PublicID, 2)
    assert.ErrorIs(t, err, ErrForbidden)

    // Past the hold deadline the draft cannot enter payment.
    e.advance(10 * time.Minute)
    _, err = e.svc.StartPayment(ctx, b.PublicID, 1)
    assert.ErrorIs(t, err, ErrBookingExpired)
}

func TestStartPayment_OnlyFromDraft(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    b, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    require.NoError(t, err)
    _, err = e.svc.StartPayment(ctx, b.PublicID, 1)
    require.NoError(t, err)

    _, err = e.svc.StartPayment(ctx, b.PublicID, 1)
    var trans *TransitionError
    require.ErrorAs(t, err, &trans)
    assert.Equal(t, model.BookingPendingPayment, trans.From)
}

func TestConfirmBooking(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    b, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    require.NoError(t, err)
    _, err = e.svc.StartPayment(ctx, b.PublicID, 1)
    require.NoError(t, err)

    out, err := e.svc.ConfirmBooking(ctx, b.PublicID)
    require.NoError(t, err)
    assert.Equal(t, model.BookingConfirmed, out.Status)
    assert.Nil(t, out.ExpiresAt)

    require.Len(t, e.store.holds, 1)
    assert.Equal(t, model.HoldSold, e.store.holds[0].Status)

    // Idempotent: a duplicate payment signal changes nothing.
    again, err := e.svc.ConfirmBooking(ctx, b.PublicID)
    require.NoError(t, err)
    assert.Equal(t, model.BookingConfirmed, again.Status)
    require.Len(t, e.store.holds, 1)
    assert.Equal(t, model.HoldSold, e.store.holds[0].Status)
}

func TestConfirmBooking_OnlyFromPendingPayment(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    b, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    require.NoError(t, err)

    _, err = e.svc.ConfirmBooking(ctx, b.PublicID)
    var trans *TransitionError
    require.ErrorAs(t, err, &trans)
    assert.Equal(t, model.BookingDraft, trans.From)
}

func TestConfirmBooking_BeatsExpiry(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    b, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    require.NoError(t, err)
    _, err = e.svc.StartPayment(ctx, b.PublicID, 1)
    require.NoError(t, err)

    // Payment landed after the window.  The confirmation still wins as
    // long as the sweeper has not expired the booking first.
    e.advance(20 * time.Minute)
    out, err := e.svc.ConfirmBooking(ctx, b.PublicID)
    require.NoError(t, err)
    assert.Equal(t, model.BookingConfirmed, out.Status)
    assert.Equal(t, model.HoldSold, e.store.holds[0].Status)
}

func TestCancelBooking_FreesSeatsImmediately(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    b, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    require.NoError(t, err)

    out, err := e.svc.CancelBooking(ctx, b.PublicID, 1)
    require.NoError(t, err)
    assert.Equal(t, model.BookingCancelled, out.Status)
    assert.Empty(t, e.store.holds)

    // The seat is bookable again without any expiry wait.
    _, err = e.svc.CreateBooking(ctx, testShowtimeID, 2, []string{"A1"})
    require.NoError(t, err)
}

func TestCancelBooking_TerminalStatesRefuse(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    b, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    require.NoError(t, err)
    _, err = e.svc.StartPayment(ctx, b.PublicID, 1)
    require.NoError(t, err)
    _, err = e.svc.ConfirmBooking(ctx, b.PublicID)
    require.NoError(t, err)

    _, err = e.svc.CancelBooking(ctx, b.PublicID, 1)
    var trans *TransitionError
    require.ErrorAs(t, err, &trans)
    assert.Equal(t, model.BookingConfirmed, trans.From)
}

func TestSweepExpired(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    stale, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    require.NoError(t, err)
    fresh, err := e.svc.CreateBooking(ctx, testShowtimeID, 2, []string{"A2"})
    require.NoError(t, err)
    _, err = e.svc.StartPayment(ctx, fresh.PublicID, 2)
    require.NoError(t, err)

    // Past the hold TTL but inside the payment window: only the DRAFT
    // booking is stale.
    e.advance(6 * time.Minute)
    swept, err := e.svc.SweepExpired(ctx)
    require.NoError(t, err)
    require.Len(t, swept, 1)
    assert.Equal(t, stale.PublicID, swept[0].PublicID)
    assert.Equal(t, model.BookingExpired, swept[0].Status)

    got, err := e.svc.GetBooking(ctx, stale.PublicID, 1)
    require.NoError(t, err)
    assert.Equal(t, model.BookingExpired, got.Status)

    // The pending booking and its hold survive.
    require.Len(t, e.store.holds, 1)
    assert.Equal(t, "A2", e.store.holds[0].SeatCode)

    // Nothing left to sweep.
    swept, err = e.svc.SweepExpired(ctx)
    require.NoError(t, err)
    assert.Empty(t, swept)
}

func TestAvailableSeats_ViewerPerspective(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    _, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    require.NoError(t, err)

    mine, err := e.svc.AvailableSeats(ctx, testShowtimeID, 1)
    require.NoError(t, err)
    assert.True(t, mine.Rows[0][0].Mine)
    assert.True(t, mine.Rows[0][0].Available)

    theirs, err := e.svc.AvailableSeats(ctx, testShowtimeID, 2)
    require.NoError(t, err)
    assert.False(t, theirs.Rows[0][0].Mine)
    assert.False(t, theirs.Rows[0][0].Available)
}

func TestBookingFlow_EndToEnd(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    // User 1 claims a normal seat and the couple seat: two logical
    // seats, two hold rows (the couple pair is one claim).
    b, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1", "C1"})
    require.NoError(t, err)
    assert.Equal(t, model.BookingDraft, b.Status)
    require.Len(t, e.store.holds, 2)

    // User 2 cannot take A1 while the hold is live.
    _, err = e.svc.CreateBooking(ctx, testShowtimeID, 2, []string{"A1"})
    sel := reasonOf(t, err)
    assert.Equal(t, SelectionSeatHeld, sel.Reason)
    assert.Equal(t, "A1", sel.SeatCode)

    // Payment completes.
    _, err = e.svc.StartPayment(ctx, b.PublicID, 1)
    require.NoError(t, err)
    out, err := e.svc.ConfirmBooking(ctx, b.PublicID)
    require.NoError(t, err)
    assert.Equal(t, model.BookingConfirmed, out.Status)

    // Now the rejection is permanent: SOLD, not HELD.
    _, err = e.svc.CreateBooking(ctx, testShowtimeID, 2, []string{"A1"})
    sel = reasonOf(t, err)
    assert.Equal(t, SelectionSeatSold, sel.Reason)

    // Time passes; sold seats never lapse.
    e.advance(time.Hour)
    m, err := e.svc.AvailableSeats(ctx, testShowtimeID, 2)
    require.NoError(t, err)
    assert.Equal(t, SeatSold, m.Rows[0][0].State)
    assert.Equal(t, SeatSold, m.Rows[1][3].State)
    assert.Equal(t, SeatFree, m.Rows[0][1].State)
}

func TestGetBooking_Ownership(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    b, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    require.NoError(t, err)

    _, err = e.svc.GetBooking(ctx, b.PublicID, 2)
    assert.ErrorIs(t, err, ErrForbidden)

    _, err = e.svc.GetBooking(ctx, "no-such-id", 1)
    assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListBookings_NewestFirst(t *testing.T) {
    e := newEnv(t)
    ctx := context.Background()

    first, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A1"})
    require.NoError(t, err)
    _, err = e.svc.CancelBooking(ctx, first.PublicID, 1)
    require.NoError(t, err)
    second, err := e.svc.CreateBooking(ctx, testShowtimeID, 1, []string{"A2"})
    require.NoError(t, err)

    list, err := e.svc.ListBookings(ctx, 1)
    require.NoError(t, err)
    require.Len(t, list, 2)
    assert.Equal(t, second.PublicID, list[0].PublicID)
    assert.Equal(t, first.PublicID, list[1].PublicID)
}
