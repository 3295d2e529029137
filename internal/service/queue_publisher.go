// Package service holds outbound integrations of the booking flow.
// Currently that is the RabbitMQ publisher for lifecycle events;
// errors are logged and returned so callers can ignore failures
// without interrupting the request that triggered them.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	q "github.com/iliyamo/cinema-ticket-booking/internal/queue"
)

// EventPublisher publishes booking lifecycle events to RabbitMQ.  It
// dials per publish, which keeps the happy path free of connection
// state at the cost of some latency on a low-volume queue.
type EventPublisher struct {
	URL string
}

func NewEventPublisher(url string) *EventPublisher {
	return &EventPublisher{URL: url}
}

// PublishBookingConfirmed emits a BookingConfirmedEvent for b.
func (p *EventPublisher) PublishBookingConfirmed(b *model.Booking) error {
	return p.publish(q.ConfirmedQueueName, q.BookingConfirmedEvent{
		BookingID:        b.PublicID,
		UserID:           b.UserID,
		ShowtimeID:       b.ShowtimeID,
		SeatCodes:        seatCodes(b),
		FinalAmountCents: b.FinalAmountCents,
		ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
	})
}

// PublishBookingExpired emits a BookingExpiredEvent for b.
func (p *EventPublisher) PublishBookingExpired(b *model.Booking) error {
	return p.publish(q.ExpiredQueueName, q.BookingExpiredEvent{
		BookingID:  b.PublicID,
		UserID:     b.UserID,
		ShowtimeID: b.ShowtimeID,
		SeatCodes:  seatCodes(b),
		ExpiredAt:  time.Now().UTC().Format(time.RFC3339),
	})
}

func seatCodes(b *model.Booking) []string {
	codes := make([]string, 0, len(b.Seats))
	for _, s := range b.Seats {
		codes = append(codes, s.SeatCode)
	}
	return codes
}

// publish declares the durable queue (idempotent) and sends one
// persistent JSON message on the default exchange.
func (p *EventPublisher) publish(queueName string, event interface{}) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
