// Package queue defines the booking lifecycle events carried over
// RabbitMQ and the background consumer that records them.
package queue

// Queue names; the routing key equals the queue name on the default
// exchange.
const (
	ConfirmedQueueName = "booking.confirmed"
	ExpiredQueueName   = "booking.expired"
)

// BookingConfirmedEvent is published after a booking reaches
// CONFIRMED and its seats are marked SOLD.
type BookingConfirmedEvent struct {
	BookingID        string   `json:"booking_id"`
	UserID           uint64   `json:"user_id"`
	ShowtimeID       uint64   `json:"showtime_id"`
	SeatCodes        []string `json:"seat_codes"`
	FinalAmountCents uint32   `json:"final_amount_cents"`
	ConfirmedAt      string   `json:"confirmed_at"` // RFC3339 UTC
}

// BookingExpiredEvent is published when the sweeper expires a booking
// whose deadline passed before payment completed.
type BookingExpiredEvent struct {
	BookingID  string   `json:"booking_id"`
	UserID     uint64   `json:"user_id"`
	ShowtimeID uint64   `json:"showtime_id"`
	SeatCodes  []string `json:"seat_codes"`
	ExpiredAt  string   `json:"expired_at"` // RFC3339 UTC
}
