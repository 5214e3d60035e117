package database

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"car-rental/models"
)

//go:embed seed/cars.json
var seedCars []byte

// carNamespace derives stable car ids from brand and name.
var carNamespace = uuid.MustParse("6f1c2d1e-4b7a-4a0e-9c55-3f0d8a1b2c3d")

// CarID returns the deterministic id of a seeded car.
func CarID(brand, name string) string {
	return uuid.NewSHA1(carNamespace, []byte(brand+"/"+name)).String()
}

// DefaultCars returns the built-in catalog.
func DefaultCars() ([]models.Car, error) {
	var cars []models.Car
	if err := json.Unmarshal(seedCars, &cars); err != nil {
		return nil, fmt.Errorf("decode seed cars: %w", err)
	}
	for i := range cars {
		if cars[i].ID == "" {
			cars[i].ID = CarID(cars[i].Brand, cars[i].Name)
		}
	}
	return cars, nil
}

// SeedCars inserts the built-in catalog when the store has no cars.
func SeedCars(ctx context.Context, store Store, logger *zap.Logger) error {
	n, err := store.CountCars(ctx)
	if err != nil {
		return fmt.Errorf("count cars: %w", err)
	}
	if n > 0 {
		logger.Info("Catalog already seeded, skipping", zap.Int("cars", n))
		return nil
	}

	cars, err := DefaultCars()
	if err != nil {
		return err
	}
	if err := store.InsertCars(ctx, cars); err != nil {
		return fmt.Errorf("seed cars: %w", err)
	}
	logger.Info("Seeded catalog", zap.Int("cars", len(cars)))
	return nil
}
