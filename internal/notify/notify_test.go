package notify

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/metroticket/internal/kafka"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMessage(t *testing.T) {
	issued := kafka.TicketEvent{
		Type:        kafka.EventTicketIssued,
		BookingID:   "booking_001",
		FromStation: "SINGAR NAGAR",
		ToStation:   "HAZRATGANJ",
		Passengers:  2,
		Amount:      40,
		ValidTill:   time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, "Lucknow Metro: 2 ticket(s) SINGAR NAGAR to HAZRATGANJ, Rs 40. Valid till 17 Oct 09:30. Ref booking_001", Message(issued))

	used := kafka.TicketEvent{Type: kafka.EventTicketUsed, BookingID: "b9"}
	assert.Contains(t, Message(used), "b9 scanned")

	other := kafka.TicketEvent{Type: "something", BookingID: "b9", Status: "active"}
	assert.Contains(t, Message(other), "active")
}

func TestSender_Send(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewSender(zap.New(core), map[string]string{"demo123": "+91 9876543210"})

	err := s.Send(context.Background(), kafka.TicketEvent{Type: kafka.EventTicketExpired, UserID: "demo123", BookingID: "b1"})
	assert.NoError(t, err)

	entries := logs.FilterMessage("sms receipt").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "+91 9876543210", entries[0].ContextMap()["to"])
	}
}

func TestSender_UnknownUser(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewSender(zap.New(core), map[string]string{})

	err := s.Send(context.Background(), kafka.TicketEvent{Type: kafka.EventTicketIssued, UserID: "ghost"})
	assert.NoError(t, err)
	assert.Equal(t, 0, logs.FilterMessage("sms receipt").Len())
	assert.Equal(t, 1, logs.FilterMessage("no phone for user, dropping receipt").Len())
}
