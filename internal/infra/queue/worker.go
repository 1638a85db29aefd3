package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// CollectorClient forwards tags to the server-side tag collector.
type CollectorClient interface {
	Collect(ctx context.Context, tag TagPayload) error
}

// CRMClient receives converted leads (form_submit tags).
type CRMClient interface {
	ForwardLead(ctx context.Context, tag TagPayload) error
}

type Worker struct {
	Channel   *amqp.Channel
	Collector CollectorClient
	CRM       CRMClient
}

func NewWorker(ch *amqp.Channel, collector CollectorClient, crm CRMClient) *Worker {
	return &Worker{
		Channel:   ch,
		Collector: collector,
		CRM:       crm,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] consume registration failed: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			w.HandleDelivery(d)
		}
	}()

	log.Printf(" [*] Worker consuming queue '%s'", queueName)
	<-forever
}

// HandleDelivery acks a delivered tag once it was forwarded; malformed
// or failed tags are nacked without requeue so they land on the DLX.
func (w *Worker) HandleDelivery(d amqp.Delivery) {
	var tag TagPayload
	if err := json.Unmarshal(d.Body, &tag); err != nil {
		log.Printf("❌ [WORKER] malformed tag, dead-lettering: %s", err)
		d.Nack(false, false)
		return
	}

	if err := w.ProcessTag(context.Background(), tag); err != nil {
		log.Printf("❌ [WORKER] tag %s (funnel=%s) failed: %s", tag.Event, tag.FunnelID, err)
		d.Nack(false, false)
		return
	}

	d.Ack(false)
}

// ProcessTag forwards a tag to the collector and, for form submissions,
// to the CRM as well.
func (w *Worker) ProcessTag(ctx context.Context, tag TagPayload) error {
	if w.Collector != nil {
		if err := w.Collector.Collect(ctx, tag); err != nil {
			return err
		}
	}

	if tag.Event == "form_submit" && w.CRM != nil {
		if err := w.CRM.ForwardLead(ctx, tag); err != nil {
			return err
		}
	}

	return nil
}
