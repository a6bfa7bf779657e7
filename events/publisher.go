// Package events announces committed likes and unlikes on a RabbitMQ queue.
package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Action string

const (
	ActionLike   Action = "like"
	ActionUnlike Action = "unlike"
)

type LikeEvent struct {
	Action     Action    `json:"action"`
	UserID     uint      `json:"user_id"`
	ArticleID  uint      `json:"article_id"`
	LikeID     uint      `json:"like_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event LikeEvent) error
}

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher publishes persistent JSON messages to a queue through the
// default exchange.
type AMQPPublisher struct {
	ch    Channel
	queue string
}

func NewAMQPPublisher(ch Channel, queue string) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, queue: queue}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event LikeEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Action),
		Body:         body,
	})
}

// NopPublisher drops every event. It is used when RabbitMQ is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, LikeEvent) error { return nil }
