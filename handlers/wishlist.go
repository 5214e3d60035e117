package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"car-rental/models"
)

// GetWishlist returns the user's wishlist with cars hydrated
func (h *Handler) GetWishlist(c *gin.Context) {
	entries, err := h.wishlist.List(c.Request.Context(), h.userID(c))
	if err != nil {
		h.respondServiceError(c, err, "Failed to load wishlist")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// AddWishlist saves a car to the wishlist
func (h *Handler) AddWishlist(c *gin.Context) {
	var req models.WishlistRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.wishlist.Add(c.Request.Context(), h.userID(c), req.CarID)
	if err != nil {
		h.logger.Warn("Error adding to wishlist", zap.String("car_id", req.CarID), zap.Error(err))
		h.respondServiceError(c, err, "Failed to add to wishlist")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// RemoveWishlist drops a car from the wishlist
func (h *Handler) RemoveWishlist(c *gin.Context) {
	carID := c.Param("carId")

	if err := h.wishlist.Remove(c.Request.Context(), h.userID(c), carID); err != nil {
		h.logger.Warn("Error removing from wishlist", zap.String("car_id", carID), zap.Error(err))
		h.respondServiceError(c, err, "Failed to remove from wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
}
