// Package fare computes ticket prices from station distance and builds the
// per-passenger QR payloads printed on a ticket.
package fare

import "fmt"

const DefaultQRPrefix = "LUCKNOW_METRO"

// StationIndexer resolves a station id to its ordinal on the line.
type StationIndexer interface {
	IndexOf(id string) (int, bool)
}

type band struct {
	maxDistance int
	fare        int
}

// Ascending bands; distances past the last band pay farthestFare.
var bands = []band{
	{maxDistance: 3, fare: 10},
	{maxDistance: 6, fare: 15},
	{maxDistance: 10, fare: 20},
}

const farthestFare = 25

type Engine struct {
	stations StationIndexer
	qrPrefix string
}

func NewEngine(stations StationIndexer, qrPrefix string) *Engine {
	if qrPrefix == "" {
		qrPrefix = DefaultQRPrefix
	}
	return &Engine{stations: stations, qrPrefix: qrPrefix}
}

// BaseFare returns the per-passenger fare for a station-count distance.
func BaseFare(distance int) int {
	if distance < 0 {
		distance = -distance
	}
	for _, b := range bands {
		if distance <= b.maxDistance {
			return b.fare
		}
	}
	return farthestFare
}

// Distance returns the number of stops between two stations.
func (e *Engine) Distance(fromID, toID string) (int, bool) {
	from, ok := e.stations.IndexOf(fromID)
	if !ok {
		return 0, false
	}
	to, ok := e.stations.IndexOf(toID)
	if !ok {
		return 0, false
	}
	d := to - from
	if d < 0 {
		d = -d
	}
	return d, true
}

// CalculateFare returns the total fare for the trip, or 0 when either id is
// unknown. Identical stations are priced in the first band; rejecting them is
// up to the caller.
func (e *Engine) CalculateFare(fromID, toID string, passengers int) int {
	d, ok := e.Distance(fromID, toID)
	if !ok {
		return 0
	}
	return BaseFare(d) * passengers
}

// GenerateTicketQR returns the gate payload for one passenger of a booking.
// passengerIndex is zero-based; the payload carries the 1-based ordinal.
func (e *Engine) GenerateTicketQR(bookingID string, passengerIndex int) string {
	return fmt.Sprintf("%s_%s_P%d", e.qrPrefix, bookingID, passengerIndex+1)
}

// TicketQRCodes returns one payload per passenger, in passenger order.
func (e *Engine) TicketQRCodes(bookingID string, passengers int) []string {
	if passengers <= 0 {
		return []string{}
	}
	codes := make([]string, passengers)
	for i := range codes {
		codes[i] = e.GenerateTicketQR(bookingID, i)
	}
	return codes
}
