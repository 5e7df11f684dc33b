package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Routing keys for booking lifecycle events.
const (
	KeyBookingCreated       = "booking.created"
	KeyBookingStatusChanged = "booking.status_changed"
)

// Publisher emits domain events for downstream consumers (notification
// workers, analytics). Implementations must be safe for concurrent use.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

type amqpPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewAMQPPublisher connects to RabbitMQ and declares a durable topic exchange.
func NewAMQPPublisher(url, exchange string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &amqpPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *amqpPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        b,
	})
}

func (p *amqpPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher is used when no AMQP broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishJSON(ctx context.Context, key string, v any) error { return nil }
func (noopPublisher) Close() error                                             { return nil }

// NewPublisher picks the AMQP publisher when a URL is configured,
// otherwise events are disabled.
func NewPublisher(url, exchange string, log *zap.Logger) Publisher {
	if url == "" {
		log.Info("AMQP not configured, booking events disabled")
		return NewNoopPublisher()
	}

	pub, err := NewAMQPPublisher(url, exchange)
	if err != nil {
		log.Warn("Failed to connect to AMQP, booking events disabled", zap.Error(err))
		return NewNoopPublisher()
	}

	log.Info("AMQP publisher connected", zap.String("exchange", exchange))
	return pub
}
