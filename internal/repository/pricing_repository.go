package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/cinema-ticket-booking/internal/pricing"
)

// PricingRepo loads the base price table from the pricing_rules
// table.  It implements pricing.RuleSource.
type PricingRepo struct {
    db *sql.DB
}

// NewPricingRepo returns a PricingRepo bound to the given database.
func NewPricingRepo(db *sql.DB) *PricingRepo { return &PricingRepo{db: db} }

// LoadRules returns every price rule currently configured.
func (r *PricingRepo) LoadRules(ctx context.Context) ([]pricing.Rule, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT room_type, seat_type, price_cents FROM pricing_rules`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var rules []pricing.Rule
    for rows.Next() {
        var rule pricing.Rule
        if err := rows.Scan(&rule.RoomType, &rule.SeatType, &rule.PriceCents); err != nil {
            return nil, err
        }
        rules = append(rules, rule)
    }
    return rules, rows.Err()
}
