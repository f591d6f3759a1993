// Package catalog holds the static, ordered list of stations on a line.
// The order is canonical: a station's ordinal is the distance metric used
// for fares.
package catalog

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/metroticket/internal/domain"
)

type Catalog struct {
	stations []domain.Station
	index    map[string]int
}

// New builds a read-only catalog. Station ids must be non-empty and unique.
func New(stations []domain.Station) (*Catalog, error) {
	index := make(map[string]int, len(stations))
	for i, s := range stations {
		if s.ID == "" {
			return nil, fmt.Errorf("station at position %d: %w", i, errors.New("empty id"))
		}
		if _, dup := index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate station id %q", s.ID)
		}
		index[s.ID] = i
	}

	cp := make([]domain.Station, len(stations))
	copy(cp, stations)
	return &Catalog{stations: cp, index: index}, nil
}

// MustNew is New for package-level station tables known to be valid.
func MustNew(stations []domain.Station) *Catalog {
	c, err := New(stations)
	if err != nil {
		panic(err)
	}
	return c
}

// FindByID returns the station with the given id. A missing id is a normal
// outcome, not an error.
func (c *Catalog) FindByID(id string) (domain.Station, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Station{}, false
	}
	return c.stations[i], true
}

// IndexOf returns the ordinal of the station in the line order.
func (c *Catalog) IndexOf(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

func (c *Catalog) At(i int) (domain.Station, bool) {
	if i < 0 || i >= len(c.stations) {
		return domain.Station{}, false
	}
	return c.stations[i], true
}

func (c *Catalog) Len() int {
	return len(c.stations)
}

// Stations returns a copy of the ordered station list.
func (c *Catalog) Stations() []domain.Station {
	out := make([]domain.Station, len(c.stations))
	copy(out, c.stations)
	return out
}
