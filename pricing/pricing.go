// Package pricing computes booking prices.
//
// The catalog field PricePerDay is charged per booked hour. That is the
// storefront's established behaviour and is kept as is.
package pricing

import "car-rental/models"

// Booking hour limits offered by the booking form.
const (
	MinHours = 1
	MaxHours = 12
)

// Price returns the total price of booking car for hours.
// It performs no bounds checks on hours.
func Price(car models.Car, hours int) float64 {
	return car.PricePerDay * float64(hours)
}

// ValidHours reports whether hours is within the bookable range.
func ValidHours(hours int) bool {
	return hours >= MinHours && hours <= MaxHours
}

// HourOptions returns the selectable hour counts in ascending order.
func HourOptions() []int {
	opts := make([]int, 0, MaxHours-MinHours+1)
	for h := MinHours; h <= MaxHours; h++ {
		opts = append(opts, h)
	}
	return opts
}
