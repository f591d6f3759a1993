// Package notify turns ticket events into SMS receipts. Delivery is logged
// only; no SMS gateway is wired.
package notify

import (
	"context"
	"fmt"

	"github.com/Domenick1991/metroticket/internal/kafka"
	"go.uber.org/zap"
)

type Sender struct {
	log    *zap.Logger
	phones map[string]string
}

// NewSender maps user ids to phone numbers for addressing receipts.
func NewSender(log *zap.Logger, phones map[string]string) *Sender {
	return &Sender{log: log, phones: phones}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	phone, ok := s.phones[event.UserID]
	if !ok {
		s.log.Warn("no phone for user, dropping receipt", zap.String("user_id", event.UserID), zap.String("booking_id", event.BookingID))
		return nil
	}

	s.log.Info("sms receipt",
		zap.String("to", phone),
		zap.String("type", event.Type),
		zap.String("booking_id", event.BookingID),
		zap.String("text", Message(event)),
	)
	return nil
}

// Message renders the receipt text for an event.
func Message(event kafka.TicketEvent) string {
	switch event.Type {
	case kafka.EventTicketIssued:
		return fmt.Sprintf("Lucknow Metro: %d ticket(s) %s to %s, Rs %d. Valid till %s. Ref %s",
			event.Passengers, event.FromStation, event.ToStation, event.Amount,
			event.ValidTill.Format("02 Jan 15:04"), event.BookingID)
	case kafka.EventTicketUsed:
		return fmt.Sprintf("Lucknow Metro: ticket %s scanned at gate. Happy journey!", event.BookingID)
	case kafka.EventTicketExpired:
		return fmt.Sprintf("Lucknow Metro: ticket %s (%s to %s) has expired.", event.BookingID, event.FromStation, event.ToStation)
	default:
		return fmt.Sprintf("Lucknow Metro: update on ticket %s: %s", event.BookingID, event.Status)
	}
}
