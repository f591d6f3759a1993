package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/metroticket/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type FareHandler struct {
	service booking.BookingUseCase
}

func NewFareHandler(service booking.BookingUseCase) *FareHandler {
	return &FareHandler{service: service}
}

func (h *FareHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.quote)
}

// quote handles GET /fares?from=&to=&passengers=; passengers defaults to 1.
func (h *FareHandler) quote(c *gin.Context) {
	passengers := 1
	if raw := c.Query("passengers"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passengers"})
			return
		}
		passengers = n
	}

	quote, err := h.service.Quote(c.Request.Context(), booking.QuoteInput{
		From:       c.Query("from"),
		To:         c.Query("to"),
		Passengers: passengers,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
