package api

import (
	"net/http"

	"github.com/Domenick1991/metroticket/internal/domain"
	"github.com/Domenick1991/metroticket/internal/live"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PositionSource interface {
	Snapshot() live.Position
}

type LiveStream interface {
	Serve(w http.ResponseWriter, r *http.Request, initial interface{}) error
}

type LineStations interface {
	Stations() []domain.Station
}

type MapHandler struct {
	line   LineStations
	train  PositionSource
	stream LiveStream
	log    *zap.Logger
}

type mapStation struct {
	domain.Station
	Passed  bool `json:"passed"`
	Current bool `json:"current"`
}

type mapResponse struct {
	Line     string        `json:"line"`
	Train    live.Position `json:"train"`
	Stations []mapStation  `json:"stations"`
}

func NewMapHandler(line LineStations, train PositionSource, stream LiveStream, log *zap.Logger) *MapHandler {
	return &MapHandler{line: line, train: train, stream: stream, log: log}
}

func (h *MapHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.snapshot)
	router.GET("/live", h.live)
}

func (h *MapHandler) snapshot(c *gin.Context) {
	pos := h.train.Snapshot()
	list := h.line.Stations()

	stations := make([]mapStation, len(list))
	for i, s := range list {
		stations[i] = mapStation{Station: s, Passed: passed(i, pos), Current: i == pos.Index}
	}

	c.JSON(http.StatusOK, mapResponse{Line: "Red Line", Train: pos, Stations: stations})
}

// passed reports whether the train already went through station i on its
// current run.
func passed(i int, pos live.Position) bool {
	if pos.Direction == live.DirectionBackward {
		return i > pos.Index
	}
	return i < pos.Index
}

func (h *MapHandler) live(c *gin.Context) {
	if err := h.stream.Serve(c.Writer, c.Request, live.NewPositionMessage(h.train.Snapshot())); err != nil {
		h.log.Warn("live map stream", zap.Error(err))
	}
}
