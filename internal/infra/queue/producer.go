package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// TagPayload is the structured analytics event pushed into the tag
// queue. Params carries the raw submitted values and any extra context
// downstream consumers need (CRM forward, tag collector).
type TagPayload struct {
	Event    string         `json:"event"`
	FunnelID string         `json:"funnel_id"`
	PageID   *string        `json:"page_id"`
	LeadID   *string        `json:"lead_id"`
	Params   map[string]any `json:"params,omitempty"`
}

type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{
		Conn: conn,
		Ch:   ch,
	}
}

// Push publishes a tag as a persistent message. Callers treat this as
// fire-and-forget; the error is for the caller's log only.
func (p *Producer) Push(ctx context.Context, tag TagPayload) error {
	body, err := json.Marshal(tag)
	if err != nil {
		return fmt.Errorf("tag payload marshal failed: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("tag publish failed: %w", err)
	}

	return nil
}
