package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetCars returns the full catalog
func (h *Handler) GetCars(c *gin.Context) {
	cars, err := h.cars.ListCars(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "Failed to load cars")
		return
	}

	c.JSON(http.StatusOK, cars)
}

// GetCar returns one car by id
func (h *Handler) GetCar(c *gin.Context) {
	car, err := h.cars.GetCar(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err, "Failed to load car")
		return
	}

	c.JSON(http.StatusOK, car)
}
