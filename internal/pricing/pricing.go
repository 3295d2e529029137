// Package pricing computes the unit price of a seat from a base price
// table keyed by room and seat type plus flat time-of-show surcharges.
// The rule table is loaded from the pricing_rules table at startup and
// can be reloaded without restarting.
package pricing

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "time"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// ErrNoPriceRule is returned when no base price exists for a
// (room type, seat type) combination.  A booking hitting this is a
// configuration gap, not a user error.
var ErrNoPriceRule = errors.New("no price rule for seat")

// Rule is one base price entry.
type Rule struct {
    RoomType   model.RoomType
    SeatType   model.SeatType
    PriceCents uint32
}

// RuleSource loads the current rule set, typically from the database.
type RuleSource interface {
    LoadRules(ctx context.Context) ([]Rule, error)
}

// Surcharges are flat deltas added on top of the base price depending
// on when the show starts.  Both may be zero.
type Surcharges struct {
    // EveningCents is added when the show starts at or after
    // EveningFromHour (local room time, 24h clock).
    EveningCents    uint32
    EveningFromHour int
    // WeekendCents is added for shows on Saturday or Sunday.
    WeekendCents uint32
}

// Resolver resolves seat prices.  It is safe for concurrent use; the
// rule table is swapped atomically on Reload.
type Resolver struct {
    mu         sync.RWMutex
    base       map[string]uint32
    surcharges Surcharges
}

// NewResolver builds a resolver from a static rule set.
func NewResolver(rules []Rule, surcharges Surcharges) *Resolver {
    r := &Resolver{surcharges: surcharges}
    r.replace(rules)
    return r
}

// NewResolverFromSource builds a resolver by loading the rule table
// from the given source.
func NewResolverFromSource(ctx context.Context, src RuleSource, surcharges Surcharges) (*Resolver, error) {
    rules, err := src.LoadRules(ctx)
    if err != nil {
        return nil, fmt.Errorf("load pricing rules: %w", err)
    }
    return NewResolver(rules, surcharges), nil
}

func key(roomType model.RoomType, seatType model.SeatType) string {
    return string(roomType) + "|" + string(seatType)
}

func (r *Resolver) replace(rules []Rule) {
    base := make(map[string]uint32, len(rules))
    for _, rule := range rules {
        base[key(rule.RoomType, rule.SeatType)] = rule.PriceCents
    }
    r.mu.Lock()
    r.base = base
    r.mu.Unlock()
}

// Reload swaps in the latest rule table from the source.
func (r *Resolver) Reload(ctx context.Context, src RuleSource) error {
    rules, err := src.LoadRules(ctx)
    if err != nil {
        return fmt.Errorf("reload pricing rules: %w", err)
    }
    r.replace(rules)
    return nil
}

// PriceFor returns the price in cents for one logical seat of the
// given type in the given room, for a show starting at the given time.
// A COUPLE seat's price covers the whole double seat.
func (r *Resolver) PriceFor(seatType model.SeatType, roomType model.RoomType, at time.Time) (uint32, error) {
    r.mu.RLock()
    price, ok := r.base[key(roomType, seatType)]
    r.mu.RUnlock()
    if !ok {
        return 0, fmt.Errorf("%w: %s seat in %s room", ErrNoPriceRule, seatType, roomType)
    }
    if r.surcharges.EveningCents > 0 && at.Hour() >= r.surcharges.EveningFromHour {
        price += r.surcharges.EveningCents
    }
    if r.surcharges.WeekendCents > 0 {
        switch at.Weekday() {
        case time.Saturday, time.Sunday:
            price += r.surcharges.WeekendCents
        }
    }
    return price, nil
}
