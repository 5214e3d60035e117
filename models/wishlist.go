package models

import "time"

// WishlistEntry represents a car saved for later by a user.
// Its ID is distinct from the referenced car's ID.
type WishlistEntry struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId,omitempty"`
	CarID     CarRef    `json:"carId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Matches reports whether the entry is identified by id, either as its own
// id or as the id of the car it references.
func (e WishlistEntry) Matches(id string) bool {
	return e.ID == id || e.CarID.ID() == id
}

// WishlistRequest represents a wishlist add request
type WishlistRequest struct {
	CarID string `json:"carId" binding:"required"`
}
