package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"car-rental/database"
	"car-rental/models"
)

// WishlistService manages the saved-cars list of the storefront user.
type WishlistService struct {
	store  database.Store
	cars   *CarService
	logger *zap.Logger
	now    func() time.Time
}

// NewWishlistService creates a WishlistService.
func NewWishlistService(store database.Store, logger *zap.Logger) *WishlistService {
	return &WishlistService{
		store:  store,
		cars:   NewCarService(store),
		logger: logger,
		now:    time.Now,
	}
}

// List returns the user's entries with their cars hydrated.
func (s *WishlistService) List(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	entries, err := s.store.ListWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	index, err := carIndex(ctx, s.store)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].CarID = hydrate(entries[i].CarID, index)
	}
	return entries, nil
}

// Add saves carID for the user. A second add of the same car fails with
// ErrAlreadyWishlisted.
func (s *WishlistService) Add(ctx context.Context, userID, carID string) (*models.WishlistEntry, error) {
	if _, err := s.cars.GetCar(ctx, carID); err != nil {
		return nil, err
	}

	entry := models.WishlistEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		CarID:     models.RefID(carID),
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.AddWishlist(ctx, entry); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrAlreadyWishlisted
		}
		return nil, fmt.Errorf("failed to add wishlist entry: %w", err)
	}

	s.logger.Info("Wishlist entry added",
		zap.String("user_id", userID),
		zap.String("car_id", carID),
		zap.String("entry_id", entry.ID))
	return &entry, nil
}

// Remove drops the user's entries matching id, which may be a car id or an entry id.
func (s *WishlistService) Remove(ctx context.Context, userID, id string) error {
	n, err := s.store.RemoveWishlist(ctx, userID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotWishlisted
	}
	s.logger.Info("Wishlist entry removed",
		zap.String("user_id", userID),
		zap.String("id", id),
		zap.Int("removed", n))
	return nil
}
