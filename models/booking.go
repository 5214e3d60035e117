package models

import "time"

// DefaultBookingStatus is shown for bookings that carry no status.
const DefaultBookingStatus = "Confirmed"

// Booking represents a confirmed car reservation for a number of hours
type Booking struct {
	ID             string    `json:"_id"`
	CarID          CarRef    `json:"carId"`
	UserID         string    `json:"userId"`
	PickupDateTime time.Time `json:"pickupDateTime"`
	PickupLocation string    `json:"pickupLocation"`
	ContactInfo    string    `json:"contactInfo"`
	Hours          int       `json:"hours"`
	TotalPrice     float64   `json:"totalPrice"`
	Status         string    `json:"status,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// StatusOrDefault returns the booking status, or "Confirmed" when absent.
func (b Booking) StatusOrDefault() string {
	if b.Status == "" {
		return DefaultBookingStatus
	}
	return b.Status
}

// ShortID returns the first eight characters of the booking id.
func (b Booking) ShortID() string {
	if len(b.ID) <= 8 {
		return b.ID
	}
	return b.ID[:8]
}

// BookingRequest represents a booking creation request
type BookingRequest struct {
	CarID          string    `json:"carId" binding:"required"`
	UserID         string    `json:"userId" binding:"required"`
	PickupDateTime time.Time `json:"pickupDateTime" binding:"required"`
	PickupLocation string    `json:"pickupLocation" binding:"required"`
	ContactInfo    string    `json:"contactInfo" binding:"required,email"`
	Hours          int       `json:"hours" binding:"required"`
	TotalPrice     float64   `json:"totalPrice"`
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Message string `json:"message"`
}
