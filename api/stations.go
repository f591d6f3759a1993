package api

import (
	"net/http"

	"github.com/Domenick1991/metroticket/internal/service/stations"
	"github.com/gin-gonic/gin"
)

type StationHandler struct {
	service stations.StationUseCase
}

func NewStationHandler(service stations.StationUseCase) *StationHandler {
	return &StationHandler{service: service}
}

func (h *StationHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *StationHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *StationHandler) get(c *gin.Context) {
	station, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, station)
}
