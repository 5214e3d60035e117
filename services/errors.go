package services

import "errors"

var (
	// ErrInvalidBooking wraps every booking validation failure.
	ErrInvalidBooking = errors.New("invalid booking")
	// ErrCarNotFound is returned when a request names an unknown car.
	ErrCarNotFound = errors.New("car not found")
	// ErrAlreadyWishlisted is returned when the user already saved the car.
	ErrAlreadyWishlisted = errors.New("car already in wishlist")
	// ErrNotWishlisted is returned when removing a car that is not saved.
	ErrNotWishlisted = errors.New("car not in wishlist")
)
