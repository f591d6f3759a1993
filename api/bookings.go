package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/metroticket/internal/domain"
	"github.com/Domenick1991/metroticket/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Passengers int    `json:"passengers"`
}

type bookingResponse struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	FromStation     domain.Station `json:"from_station"`
	ToStation       domain.Station `json:"to_station"`
	Passengers      int            `json:"passengers"`
	Amount          int            `json:"amount"`
	BookingDate     string         `json:"booking_date"`
	ValidTill       string         `json:"valid_till"`
	Status          string         `json:"status"`
	TransactionID   string         `json:"transaction_id"`
	PaymentProvider string         `json:"payment_provider"`
	QRCodes         []string       `json:"qr_codes"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.POST("/:id/redeem", h.redeem)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:         currentUserID(c),
		From:           req.From,
		To:             req.To,
		Passengers:     req.Passengers,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) list(c *gin.Context) {
	list, err := h.service.ListBookings(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toBookingResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) redeem(c *gin.Context) {
	b, err := h.service.RedeemBooking(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		FromStation:     b.FromStation,
		ToStation:       b.ToStation,
		Passengers:      b.Passengers,
		Amount:          b.Amount,
		BookingDate:     b.BookingDate.Format(time.RFC3339),
		ValidTill:       b.ValidTill.Format(time.RFC3339),
		Status:          string(b.Status),
		TransactionID:   b.TransactionID,
		PaymentProvider: b.PaymentProvider,
		QRCodes:         b.QRCodes,
	}
}
