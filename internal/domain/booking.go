package domain

import "time"

type BookingStatus string

const (
	BookingStatusActive  BookingStatus = "active"
	BookingStatusExpired BookingStatus = "expired"
	BookingStatusUsed    BookingStatus = "used"
)

// Booking is one purchased ticket covering 1..n passengers for a single
// origin-destination pair. QRCodes holds exactly one payload per passenger.
type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	FromStation     Station       `json:"from_station"`
	ToStation       Station       `json:"to_station"`
	Passengers      int           `json:"passengers"`
	Amount          int           `json:"amount"`
	BookingDate     time.Time     `json:"booking_date"`
	ValidTill       time.Time     `json:"valid_till"`
	Status          BookingStatus `json:"status"`
	TransactionID   string        `json:"transaction_id"`
	PaymentProvider string        `json:"payment_provider"`
	QRCodes         []string      `json:"qr_codes"`
}

// StatusAt is the status as seen at t: an active ticket past ValidTill reads
// as expired even before the store records it.
func (b Booking) StatusAt(t time.Time) BookingStatus {
	if b.Status == BookingStatusActive && !t.Before(b.ValidTill) {
		return BookingStatusExpired
	}
	return b.Status
}

// IsValidAt reports whether the ticket can still be used at t.
func (b Booking) IsValidAt(t time.Time) bool {
	return b.Status == BookingStatusActive && t.Before(b.ValidTill)
}
