package repository

import (
	"time"

	"github.com/Domenick1991/metroticket/internal/catalog"
	"github.com/Domenick1991/metroticket/internal/domain"
)

// QRGenerator builds per-passenger ticket payloads.
type QRGenerator interface {
	TicketQRCodes(bookingID string, passengers int) []string
}

// DemoBookings returns the history shown to the demo user on first login:
// one active two-passenger ticket and one expired single ticket.
func DemoBookings(now time.Time, userID string, stations *catalog.Catalog, qr QRGenerator) []domain.Booking {
	at := func(i int) domain.Station {
		s, _ := stations.At(i)
		return s
	}

	return []domain.Booking{
		{
			ID:              "booking_001",
			UserID:          userID,
			FromStation:     at(4),
			ToStation:       at(12),
			Passengers:      2,
			Amount:          30,
			BookingDate:     now.Add(-30 * time.Minute),
			ValidTill:       now.Add(12 * time.Hour),
			Status:          domain.BookingStatusActive,
			TransactionID:   "TXN123456789",
			PaymentProvider: "GPay",
			QRCodes:         qr.TicketQRCodes("booking_001", 2),
		},
		{
			ID:              "booking_002",
			UserID:          userID,
			FromStation:     at(0),
			ToStation:       at(9),
			Passengers:      1,
			Amount:          20,
			BookingDate:     now.Add(-26 * time.Hour),
			ValidTill:       now.Add(-2 * time.Hour),
			Status:          domain.BookingStatusExpired,
			TransactionID:   "TXN987654321",
			PaymentProvider: "PhonePe",
			QRCodes:         qr.TicketQRCodes("booking_002", 1),
		},
	}
}
