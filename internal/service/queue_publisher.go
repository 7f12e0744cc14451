// Package service provides the RabbitMQ publisher for booking lifecycle
// events. Errors are returned so callers can ignore failures without
// interrupting the main request flow.
package service

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/stayloop/hotel-booking/internal/queue"
)

// Publisher publishes booking events to the booking.events queue. A nil
// Publisher disables eventing entirely, which is how the service runs when
// no AMQP URL is configured.
type Publisher struct {
	url string
	log zerolog.Logger
}

// NewPublisher returns a Publisher for the given broker URL, or nil when the
// URL is empty.
func NewPublisher(url string, log zerolog.Logger) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url, log: log}
}

// PublishBookingEvent publishes a BookingEvent as a persistent message.
// The connection is established per publish; booking mutations are rare
// enough that holding a long-lived channel is not worth the reconnect
// bookkeeping here.
func (p *Publisher) PublishBookingEvent(event queue.BookingEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable declare is idempotent; messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.BookingQueueName, true, false, false, false, nil); err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.Publish("", queue.BookingQueueName, false, false, pub); err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
