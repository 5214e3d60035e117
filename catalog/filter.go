// Package catalog holds the storefront's car catalog: the fetched cars and
// wishlist, and the pure filtering and pagination applied to them.
package catalog

import (
	"strings"

	"car-rental/models"
)

// Criteria holds the browse filters. Zero values are unset: an empty string
// matches every car, and a zero MinRating or MaxPrice is unconstrained.
type Criteria struct {
	Type         string
	FuelType     string
	Transmission string
	MinRating    float64
	MaxPrice     float64
	Search       string
}

// Active reports whether any filter or search term is set.
func (c Criteria) Active() bool {
	return c != Criteria{}
}

// Match reports whether car satisfies every active predicate of c.
func (c Criteria) Match(car models.Car) bool {
	if c.Search != "" && !strings.Contains(strings.ToLower(car.Name), strings.ToLower(c.Search)) {
		return false
	}
	if c.Type != "" && car.Type != c.Type {
		return false
	}
	if c.FuelType != "" && car.FuelType != c.FuelType {
		return false
	}
	if c.Transmission != "" && car.Transmission != c.Transmission {
		return false
	}
	if c.MinRating != 0 && car.Rating < c.MinRating {
		return false
	}
	if c.MaxPrice != 0 && car.PricePerDay > c.MaxPrice {
		return false
	}
	return true
}

// Filter returns the cars matching c, in catalog order. It never modifies cars.
func Filter(cars []models.Car, c Criteria) []models.Car {
	out := make([]models.Car, 0, len(cars))
	for _, car := range cars {
		if c.Match(car) {
			out = append(out, car)
		}
	}
	return out
}

// RatingSteps lists the minimum-rating filter options.
var RatingSteps = []float64{5, 4, 3}
