package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"car-rental/models"
)

// CreateBooking creates a new booking
func (h *Handler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Debug("Booking request", zap.Any("request", req))

	booking, err := h.bookings.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("Error creating booking", zap.String("car_id", req.CarID), zap.Error(err))
		h.respondServiceError(c, err, "Booking failed")
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBookings returns the booking history
func (h *Handler) GetBookings(c *gin.Context) {
	bookings, err := h.bookings.ListBookings(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "Failed to fetch bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}
