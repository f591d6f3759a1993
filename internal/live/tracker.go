// Package live simulates the train shown on the line map and streams its
// position to websocket clients. There is no telemetry source; the train
// walks the line one station per tick and turns around at the terminals.
package live

import (
	"context"
	"sync"
	"time"

	"github.com/Domenick1991/metroticket/internal/domain"
)

type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

type Line interface {
	At(i int) (domain.Station, bool)
	Len() int
}

type Position struct {
	Station   domain.Station `json:"station"`
	Index     int            `json:"index"`
	Direction Direction      `json:"direction"`
	OnTime    bool           `json:"on_time"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type Tracker struct {
	mu        sync.RWMutex
	line      Line
	index     int
	step      int
	updatedAt time.Time
	now       func() time.Time
}

// NewTracker places the train at start, clamped to the line.
func NewTracker(line Line, start int) *Tracker {
	if start < 0 {
		start = 0
	}
	if n := line.Len(); start >= n {
		start = n - 1
	}
	return &Tracker{line: line, index: start, step: 1, updatedAt: time.Now(), now: time.Now}
}

func (t *Tracker) Snapshot() Position {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.position()
}

// Advance moves the train one station, reversing at either end of the line.
func (t *Tracker) Advance() Position {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n := t.line.Len(); n > 1 {
		next := t.index + t.step
		if next < 0 || next >= n {
			t.step = -t.step
			next = t.index + t.step
		}
		t.index = next
	}
	t.updatedAt = t.now()
	return t.position()
}

// Run advances the train every tick and hands each new position to publish
// until ctx is done.
func (t *Tracker) Run(ctx context.Context, tick time.Duration, publish func(Position)) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			publish(t.Advance())
		}
	}
}

func (t *Tracker) position() Position {
	station, _ := t.line.At(t.index)
	dir := DirectionForward
	if t.step < 0 {
		dir = DirectionBackward
	}
	return Position{
		Station:   station,
		Index:     t.index,
		Direction: dir,
		OnTime:    true,
		UpdatedAt: t.updatedAt,
	}
}
