package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"car-rental/models"
	"car-rental/services"
)

// userHeader lets a caller act as a user other than the configured mock user.
const userHeader = "X-User-ID"

// Handler serves the rental REST API.
type Handler struct {
	cars          *services.CarService
	wishlist      *services.WishlistService
	bookings      *services.BookingService
	defaultUserID string
	logger        *zap.Logger
}

// New creates a Handler. defaultUserID owns the wishlist when no X-User-ID
// header is sent.
func New(cars *services.CarService, wishlist *services.WishlistService, bookings *services.BookingService, defaultUserID string, logger *zap.Logger) *Handler {
	return &Handler{
		cars:          cars,
		wishlist:      wishlist,
		bookings:      bookings,
		defaultUserID: defaultUserID,
		logger:        logger,
	}
}

func (h *Handler) userID(c *gin.Context) string {
	if id := c.GetHeader(userHeader); id != "" {
		return id
	}
	return h.defaultUserID
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{Message: message})
}

// respondServiceError maps service errors onto HTTP statuses.
func (h *Handler) respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidBooking):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrCarNotFound), errors.Is(err, services.ErrNotWishlisted):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyWishlisted):
		respondError(c, http.StatusConflict, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err), zap.String("path", c.FullPath()))
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
