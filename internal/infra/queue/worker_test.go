package queue_test

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"github.com/calemorrison/funnel-api/internal/infra/queue"
)

// fakeAcknowledger stands in for the broker channel so delivery
// handling can be exercised without RabbitMQ.
type fakeAcknowledger struct {
	acks     int
	nacks    int
	requeued bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acks++
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	f.nacks++
	f.requeued = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacks++
	f.requeued = requeue
	return nil
}

type fakeCollector struct {
	tags []queue.TagPayload
	err  error
}

func (f *fakeCollector) Collect(_ context.Context, tag queue.TagPayload) error {
	if f.err != nil {
		return f.err
	}
	f.tags = append(f.tags, tag)
	return nil
}

type fakeCRM struct {
	tags []queue.TagPayload
}

func (f *fakeCRM) ForwardLead(_ context.Context, tag queue.TagPayload) error {
	f.tags = append(f.tags, tag)
	return nil
}

func TestProcessTagFormSubmitReachesCRM(t *testing.T) {
	collector := &fakeCollector{}
	crm := &fakeCRM{}
	w := queue.NewWorker(nil, collector, crm)

	leadID := "lead-123"
	tag := queue.TagPayload{
		Event:    "form_submit",
		FunnelID: "first-time-buyers",
		LeadID:   &leadID,
		Params:   map[string]any{"email": "jane@x.com"},
	}

	err := w.ProcessTag(context.Background(), tag)
	assert.NoError(t, err)
	assert.Len(t, collector.tags, 1)
	assert.Len(t, crm.tags, 1)
	assert.Equal(t, "lead-123", *crm.tags[0].LeadID)
}

func TestProcessTagPageViewSkipsCRM(t *testing.T) {
	collector := &fakeCollector{}
	crm := &fakeCRM{}
	w := queue.NewWorker(nil, collector, crm)

	err := w.ProcessTag(context.Background(), queue.TagPayload{
		Event:    "page_view",
		FunnelID: "first-time-buyers",
	})

	assert.NoError(t, err)
	assert.Len(t, collector.tags, 1)
	assert.Empty(t, crm.tags)
}

func TestHandleDeliveryAcksGoodTag(t *testing.T) {
	collector := &fakeCollector{}
	w := queue.NewWorker(nil, collector, &fakeCRM{})

	ack := &fakeAcknowledger{}
	w.HandleDelivery(amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{"event":"page_view","funnel_id":"first-time-buyers"}`),
	})

	assert.Equal(t, 1, ack.acks)
	assert.Equal(t, 0, ack.nacks)
	assert.Len(t, collector.tags, 1)
}

func TestHandleDeliveryDeadLettersMalformedTag(t *testing.T) {
	collector := &fakeCollector{}
	w := queue.NewWorker(nil, collector, &fakeCRM{})

	ack := &fakeAcknowledger{}
	w.HandleDelivery(amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{not json`),
	})

	assert.Equal(t, 0, ack.acks)
	assert.Equal(t, 1, ack.nacks)
	// No requeue: the DLX binding picks it up instead.
	assert.False(t, ack.requeued)
	assert.Empty(t, collector.tags)
}

func TestHandleDeliveryDeadLettersFailedForward(t *testing.T) {
	collector := &fakeCollector{err: errors.New("collector down")}
	w := queue.NewWorker(nil, collector, &fakeCRM{})

	ack := &fakeAcknowledger{}
	w.HandleDelivery(amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{"event":"page_view","funnel_id":"first-time-buyers"}`),
	})

	assert.Equal(t, 0, ack.acks)
	assert.Equal(t, 1, ack.nacks)
	assert.False(t, ack.requeued)
}

func TestProcessTagCollectorFailure(t *testing.T) {
	collector := &fakeCollector{err: errors.New("collector down")}
	crm := &fakeCRM{}
	w := queue.NewWorker(nil, collector, crm)

	err := w.ProcessTag(context.Background(), queue.TagPayload{
		Event:    "form_submit",
		FunnelID: "first-time-buyers",
	})

	assert.Error(t, err)
	// CRM forward never runs when the collector rejects the tag.
	assert.Empty(t, crm.tags)
}
