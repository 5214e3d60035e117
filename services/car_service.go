package services

import (
	"context"
	"errors"
	"fmt"

	"car-rental/database"
	"car-rental/models"
)

// CarService serves the catalog.
type CarService struct {
	store database.Store
}

// NewCarService creates a CarService.
func NewCarService(store database.Store) *CarService {
	return &CarService{store: store}
}

// ListCars returns every car in catalog order
func (s *CarService) ListCars(ctx context.Context) ([]models.Car, error) {
	return s.store.ListCars(ctx)
}

// GetCar returns one car, or ErrCarNotFound.
func (s *CarService) GetCar(ctx context.Context, id string) (*models.Car, error) {
	car, err := s.store.GetCar(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCarNotFound, id)
		}
		return nil, err
	}
	return car, nil
}

// carIndex loads the catalog keyed by id for hydrating references.
func carIndex(ctx context.Context, store database.Store) (map[string]models.Car, error) {
	cars, err := store.ListCars(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]models.Car, len(cars))
	for _, c := range cars {
		index[c.ID] = c
	}
	return index, nil
}

// hydrate replaces a bare car reference with the full car when known.
func hydrate(ref models.CarRef, index map[string]models.Car) models.CarRef {
	if car, ok := index[ref.ID()]; ok {
		return models.RefCar(car)
	}
	return ref
}
