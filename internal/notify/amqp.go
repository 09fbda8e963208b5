package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Envelope is the wire format of a notification on the exchange.
type Envelope struct {
	UserID  string    `json:"user_id"`
	Event   string    `json:"event"`
	Payload string    `json:"payload"`
	SentAt  time.Time `json:"sent_at"`
}

// amqpPublisher is satisfied by *amqp.Channel.
type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// channelOpener is satisfied by *amqp.Connection.
type channelOpener interface {
	Channel() (*amqp.Channel, error)
}

// DeclareExchange declares the fanout exchange every instance publishes to and consumes from.
func DeclareExchange(ch *amqp.Channel, exchange string) error {
	return ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil)
}

// Publisher sends notifications through RabbitMQ so that whichever instance holds the
// user's connection can deliver them.
type Publisher struct {
	ch       amqpPublisher
	exchange string
	now      func() time.Time
}

// NewPublisher creates a Publisher on an open amqp channel. The exchange must already be declared.
func NewPublisher(ch amqpPublisher, exchange string) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		now:      time.Now,
	}
}

func (p *Publisher) SendToUser(ctx context.Context, userID, event, payload string) error {
	sentAt := p.now()
	body, err := json.Marshal(Envelope{
		UserID:  userID,
		Event:   event,
		Payload: payload,
		SentAt:  sentAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		userID,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    uuid.NewString(),
			Timestamp:    sentAt,
			DeliveryMode: amqp.Transient,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Bridge consumes the notification exchange and hands every envelope to a local channel,
// normally the Hub serving this instance's open streams.
type Bridge struct {
	conn     channelOpener
	exchange string
	local    Channel
	log      zerolog.Logger
}

// NewBridge creates a Bridge that opens its own channel on conn when Run starts.
func NewBridge(conn channelOpener, exchange string, local Channel, log zerolog.Logger) *Bridge {
	return &Bridge{
		conn:     conn,
		exchange: exchange,
		local:    local,
		log:      log,
	}
}

// Run consumes until ctx is cancelled or the broker closes the delivery channel.
func (b *Bridge) Run(ctx context.Context) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open amqp channel: %w", err)
	}
	defer ch.Close()

	if err := DeclareExchange(ch, b.exchange); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", b.exchange, err)
	}

	// One private queue per instance, gone with the connection.
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "", b.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", q.Name, err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, q.Name, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume queue %s: %w", q.Name, err)
	}

	b.log.Info().Str("exchange", b.exchange).Str("queue", q.Name).Msg("Notification bridge consuming")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("amqp delivery channel closed")
			}
			b.handle(ctx, d.Body)
		}
	}
}

func (b *Bridge) handle(ctx context.Context, body []byte) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		b.log.Error().Err(err).Msg("Failed to decode notification envelope")
		return
	}
	if env.UserID == "" {
		b.log.Warn().Str("event", env.Event).Msg("Notification envelope without user, dropped")
		return
	}

	if err := b.local.SendToUser(ctx, env.UserID, env.Event, env.Payload); err != nil {
		b.log.Warn().Err(err).Str("user_id", env.UserID).Msg("Failed to deliver bridged notification")
	}
}
