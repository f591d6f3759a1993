package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/metroticket/internal/auth"
	"github.com/Domenick1991/metroticket/internal/service/booking"
	"github.com/Domenick1991/metroticket/internal/service/stations"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, booking.ErrInvalidPassengers),
		errors.Is(err, booking.ErrSameStation),
		errors.Is(err, booking.ErrStationNotFound),
		errors.Is(err, booking.ErrStationClosed),
		errors.Is(err, booking.ErrUserRequired):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, stations.ErrStationNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrDuplicateConfirmation),
		errors.Is(err, booking.ErrTicketNotActive):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}
