package domain

type StationStatus string

const (
	StationStatusOpen   StationStatus = "open"
	StationStatusClosed StationStatus = "closed"
)

type Station struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Status StationStatus `json:"status"`
}

func (s Station) IsOpen() bool {
	return s.Status == StationStatusOpen
}
