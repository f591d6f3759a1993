package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/Domenick1991/metroticket/internal/catalog"
	"github.com/Domenick1991/metroticket/internal/live"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubStream struct {
	initial interface{}
	err     error
}

func (s *stubStream) Serve(w http.ResponseWriter, r *http.Request, initial interface{}) error {
	s.initial = initial
	return s.err
}

func TestMapHandler_snapshot(t *testing.T) {
	line := catalog.LucknowRedLine()
	train := live.NewTracker(line, 10)
	handler := NewMapHandler(line, train, &stubStream{}, zap.NewNop())
	c, w := newTestContext("GET", "/api/v1/map", nil)

	handler.snapshot(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got mapResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Red Line", got.Line)
	assert.Equal(t, 10, got.Train.Index)
	assert.Equal(t, "HUSSAINGANJ", got.Train.Station.Name)
	require.Len(t, got.Stations, line.Len())
	assert.True(t, got.Stations[9].Passed)
	assert.False(t, got.Stations[9].Current)
	assert.True(t, got.Stations[10].Current)
	assert.False(t, got.Stations[10].Passed)
	assert.False(t, got.Stations[11].Passed)
	assert.Equal(t, "hussainganj", got.Stations[10].ID)
}

func TestMapHandler_snapshot_Backward(t *testing.T) {
	line := catalog.LucknowRedLine()
	train := live.NewTracker(line, line.Len()-2)
	train.Advance() // reaches MUNSHIPULIA
	pos := train.Advance()
	require.Equal(t, live.DirectionBackward, pos.Direction)
	require.Equal(t, line.Len()-2, pos.Index)

	handler := NewMapHandler(line, train, &stubStream{}, zap.NewNop())
	c, w := newTestContext("GET", "/api/v1/map", nil)

	handler.snapshot(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got mapResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	last := line.Len() - 1
	assert.True(t, got.Stations[last].Passed)
	assert.True(t, got.Stations[last-1].Current)
	assert.False(t, got.Stations[last-1].Passed)
	assert.False(t, got.Stations[0].Passed)
	assert.False(t, got.Stations[last-2].Passed)
}

func TestMapHandler_live(t *testing.T) {
	line := catalog.LucknowRedLine()
	stream := &stubStream{err: errors.New("not a websocket handshake")}
	handler := NewMapHandler(line, live.NewTracker(line, 3), stream, zap.NewNop())
	c, _ := newTestContext("GET", "/api/v1/map/live", nil)

	handler.live(c)

	msg, ok := stream.initial.(live.Message)
	require.True(t, ok)
	assert.Equal(t, live.MessageTypeTrainPosition, msg.Type)
	assert.Equal(t, 3, msg.Position.Index)
}
