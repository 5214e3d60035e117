// Package wishlist keeps the local wishlist in step with the rental API.
//
// Every toggle calls the API first and mutates local state only after the
// call succeeds, so a failed request leaves the wishlist exactly as it was.
package wishlist

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"car-rental/api"
	"car-rental/models"
	"car-rental/notify"
)

const (
	msgAdded   = "Added to wishlist"
	msgRemoved = "Removed from wishlist"
)

// ErrToggleInProgress is returned when a toggle starts while another is in flight.
var ErrToggleInProgress = errors.New("wishlist update already in progress")

// Store is the local wishlist and catalog state.
type Store interface {
	Wishlist() []models.WishlistEntry
	AppendWishlist(entry models.WishlistEntry)
	RemoveWishlist(id string) int
	Car(id string) (models.Car, bool)
}

// API is the remote wishlist endpoint.
type API interface {
	AddWishlist(ctx context.Context, carID string) (*models.WishlistEntry, error)
	RemoveWishlist(ctx context.Context, carID string) error
}

// Synchronizer adds and removes wishlist entries.
type Synchronizer struct {
	store    Store
	api      API
	notifier notify.Notifier
	logger   *zap.Logger

	busy atomic.Bool
}

// New creates a Synchronizer.
func New(store Store, remote API, notifier notify.Notifier, logger *zap.Logger) *Synchronizer {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synchronizer{
		store:    store,
		api:      remote,
		notifier: notifier,
		logger:   logger,
	}
}

// IsWishlisted reports whether any entry's own id or car id equals carID.
func (s *Synchronizer) IsWishlisted(carID string) bool {
	for _, e := range s.store.Wishlist() {
		if e.Matches(carID) {
			return true
		}
	}
	return false
}

// InProgress reports whether a toggle is in flight.
func (s *Synchronizer) InProgress() bool {
	return s.busy.Load()
}

// Toggle adds carID when it is not wishlisted and removes it otherwise.
// It reports whether the car is wishlisted afterwards.
func (s *Synchronizer) Toggle(ctx context.Context, carID string) (bool, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return s.IsWishlisted(carID), ErrToggleInProgress
	}
	defer s.busy.Store(false)

	if s.IsWishlisted(carID) {
		return s.remove(ctx, carID)
	}
	return s.add(ctx, carID)
}

func (s *Synchronizer) add(ctx context.Context, carID string) (bool, error) {
	entry, err := s.api.AddWishlist(ctx, carID)
	if err != nil {
		s.fail("add", carID, err)
		return false, err
	}

	if !entry.CarID.Hydrated() {
		ref := entry.CarID.ID()
		if ref == "" {
			ref = carID
		}
		if car, ok := s.store.Car(ref); ok {
			entry.CarID = models.RefCar(car)
		} else {
			entry.CarID = models.RefID(ref)
		}
	}
	s.store.AppendWishlist(*entry)

	s.logger.Debug("wishlist entry added", zap.String("car_id", carID), zap.String("entry_id", entry.ID))
	s.notifier.Success(msgAdded)
	return true, nil
}

func (s *Synchronizer) remove(ctx context.Context, carID string) (bool, error) {
	if err := s.api.RemoveWishlist(ctx, carID); err != nil {
		s.fail("remove", carID, err)
		return true, err
	}

	n := s.store.RemoveWishlist(carID)

	s.logger.Debug("wishlist entry removed", zap.String("car_id", carID), zap.Int("removed", n))
	s.notifier.Success(msgRemoved)
	return false, nil
}

func (s *Synchronizer) fail(op, carID string, err error) {
	s.logger.Warn("wishlist "+op+" failed", zap.String("car_id", carID), zap.Error(err))
	s.notifier.Error(api.MessageOf(err))
}
