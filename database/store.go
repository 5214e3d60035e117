package database

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"car-rental/config"
	"car-rental/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("duplicate record")
)

// Store persists the catalog, wishlist and bookings.
//
// Stored wishlist entries and bookings reference cars by id only;
// hydration with full car data is left to the services.
type Store interface {
	ListCars(ctx context.Context) ([]models.Car, error)
	GetCar(ctx context.Context, id string) (*models.Car, error)
	CountCars(ctx context.Context) (int, error)
	InsertCars(ctx context.Context, cars []models.Car) error

	ListWishlist(ctx context.Context, userID string) ([]models.WishlistEntry, error)
	// AddWishlist returns ErrDuplicate if the user already saved the car.
	AddWishlist(ctx context.Context, entry models.WishlistEntry) error
	// RemoveWishlist drops the user's entries whose id or car id equals id.
	RemoveWishlist(ctx context.Context, userID, id string) (int, error)

	CreateBooking(ctx context.Context, booking models.Booking) error
	ListBookings(ctx context.Context) ([]models.Booking, error)

	Close() error
}

// Open connects to the store selected by cfg.StoreDriver and prepares its schema.
func Open(cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return OpenPostgres(cfg.PostgresDSN(), cfg.DBMaxRetries, logger)
	case config.DriverMySQL:
		return OpenMySQL(cfg.MySQLDSN, cfg.DBMaxRetries, logger)
	case config.DriverMemory:
		return NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
