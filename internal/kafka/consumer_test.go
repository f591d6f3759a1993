package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTicketEventHandler_Decodes(t *testing.T) {
	var got TicketEvent
	h := TicketEventHandler(zap.NewNop(), func(_ context.Context, e TicketEvent) error {
		got = e
		return nil
	})

	err := h(context.Background(), kafka.Message{
		Key:   []byte("booking_001"),
		Value: []byte(`{"type":"ticket_issued","booking_id":"booking_001","passengers":2,"amount":40}`),
	})

	assert.NoError(t, err)
	assert.Equal(t, EventTicketIssued, got.Type)
	assert.Equal(t, "booking_001", got.BookingID)
	assert.Equal(t, 2, got.Passengers)
	assert.Equal(t, 40, got.Amount)
}

func TestTicketEventHandler_SkipsGarbage(t *testing.T) {
	called := false
	h := TicketEventHandler(zap.NewNop(), func(context.Context, TicketEvent) error {
		called = true
		return nil
	})

	err := h(context.Background(), kafka.Message{Value: []byte("not json")})

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestTicketEventHandler_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	h := TicketEventHandler(zap.NewNop(), func(context.Context, TicketEvent) error {
		return boom
	})

	err := h(context.Background(), kafka.Message{Value: []byte(`{"type":"ticket_used"}`)})
	assert.ErrorIs(t, err, boom)
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}

func TestProducer_CheckConnectionWithoutBrokers(t *testing.T) {
	p := NewProducer(nil, zap.NewNop())
	assert.Error(t, p.CheckConnection(context.Background()))
	assert.NoError(t, p.Close())
}
