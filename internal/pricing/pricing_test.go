package pricing

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

var testRules = []Rule{
    {RoomType: model.RoomStandard, SeatType: model.SeatTypeNormal, PriceCents: 1000},
    {RoomType: model.RoomStandard, SeatType: model.SeatTypeVIP, PriceCents: 1500},
    {RoomType: model.RoomIMAX, SeatType: model.SeatTypeNormal, PriceCents: 1800},
}

// 2026-09-02 is a Wednesday.
func showAt(s string) time.Time {
    t, err := time.Parse(time.RFC3339, s)
    if err != nil {
        panic(err)
    }
    return t
}

func TestPriceFor_BaseRules(t *testing.T) {
    r := NewResolver(testRules, Surcharges{})
    weekdayNoon := showAt("2026-09-02T12:00:00Z")

    tests := []struct {
        name     string
        roomType model.RoomType
        seatType model.SeatType
        want     uint32
    }{
        {"standard normal", model.RoomStandard, model.SeatTypeNormal, 1000},
        {"standard vip", model.RoomStandard, model.SeatTypeVIP, 1500},
        {"imax normal", model.RoomIMAX, model.SeatTypeNormal, 1800},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            got, err := r.PriceFor(tt.seatType, tt.roomType, weekdayNoon)
            require.NoError(t, err)
            assert.Equal(t, tt.want, got)
        })
    }
}

func TestPriceFor_MissingRule(t *testing.T) {
    r := NewResolver(testRules, Surcharges{})
    _, err := r.PriceFor(model.SeatTypeCouple, model.RoomStandard, showAt("2026-09-02T12:00:00Z"))
    assert.ErrorIs(t, err, ErrNoPriceRule)
}

func TestPriceFor_Surcharges(t *testing.T) {
    r := NewResolver(testRules, Surcharges{
        EveningCents:    200,
        EveningFromHour: 18,
        WeekendCents:    300,
    })

    tests := []struct {
        name string
        at   time.Time
        want uint32
    }{
        {"weekday matinee", showAt("2026-09-02T12:00:00Z"), 1000},
        {"weekday evening", showAt("2026-09-02T19:00:00Z"), 1200},
        {"evening boundary hour", showAt("2026-09-02T18:00:00Z"), 1200},
        {"saturday matinee", showAt("2026-09-05T12:00:00Z"), 1300},
        {"sunday evening", showAt("2026-09-06T20:30:00Z"), 1500},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            got, err := r.PriceFor(model.SeatTypeNormal, model.RoomStandard, tt.at)
            require.NoError(t, err)
            assert.Equal(t, tt.want, got)
        })
    }
}

type staticSource []Rule

func (s staticSource) LoadRules(ctx context.Context) ([]Rule, error) { return s, nil }

func TestResolver_Reload(t *testing.T) {
    r := NewResolver(testRules, Surcharges{})
    when := showAt("2026-09-02T12:00:00Z")

    require.NoError(t, r.Reload(context.Background(), staticSource{
        {RoomType: model.RoomStandard, SeatType: model.SeatTypeNormal, PriceCents: 1100},
    }))

    got, err := r.PriceFor(model.SeatTypeNormal, model.RoomStandard, when)
    require.NoError(t, err)
    assert.Equal(t, uint32(1100), got)

    // Rules absent from the new table are gone, not merged.
    _, err = r.PriceFor(model.SeatTypeVIP, model.RoomStandard, when)
    assert.ErrorIs(t, err, ErrNoPriceRule)
}

func TestNewResolverFromSource(t *testing.T) {
    r, err := NewResolverFromSource(context.Background(), staticSource(testRules), Surcharges{})
    require.NoError(t, err)
    got, err := r.PriceFor(model.SeatTypeVIP, model.RoomStandard, showAt("2026-09-02T12:00:00Z"))
    require.NoError(t, err)
    assert.Equal(t, uint32(1500), got)
}
