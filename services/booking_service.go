package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"car-rental/database"
	"car-rental/models"
	"car-rental/pricing"
)

// priceTolerance absorbs float rounding between client and server totals.
const priceTolerance = 0.005

// BookingService creates and lists bookings.
type BookingService struct {
	store  database.Store
	cars   *CarService
	logger *zap.Logger
	now    func() time.Time
}

// NewBookingService creates a BookingService.
func NewBookingService(store database.Store, logger *zap.Logger) *BookingService {
	return &BookingService{
		store:  store,
		cars:   NewCarService(store),
		logger: logger,
		now:    time.Now,
	}
}

// CreateBooking validates the request, recomputes the price and stores the booking.
// The client-computed total must match pricing.Price for the car.
func (s *BookingService) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	if strings.TrimSpace(req.PickupLocation) == "" || strings.TrimSpace(req.ContactInfo) == "" {
		return nil, fmt.Errorf("%w: please complete all fields", ErrInvalidBooking)
	}
	if req.PickupDateTime.IsZero() {
		return nil, fmt.Errorf("%w: pickup date and time are required", ErrInvalidBooking)
	}
	if !pricing.ValidHours(req.Hours) {
		return nil, fmt.Errorf("%w: hours must be between %d and %d", ErrInvalidBooking, pricing.MinHours, pricing.MaxHours)
	}

	car, err := s.cars.GetCar(ctx, req.CarID)
	if err != nil {
		return nil, err
	}

	total := pricing.Price(*car, req.Hours)
	if math.Abs(total-req.TotalPrice) > priceTolerance {
		return nil, fmt.Errorf("%w: total price %.2f does not match %.2f for %d hours",
			ErrInvalidBooking, req.TotalPrice, total, req.Hours)
	}

	booking := models.Booking{
		ID:             uuid.NewString(),
		CarID:          models.RefCar(*car),
		UserID:         req.UserID,
		PickupDateTime: req.PickupDateTime,
		PickupLocation: strings.TrimSpace(req.PickupLocation),
		ContactInfo:    strings.TrimSpace(req.ContactInfo),
		Hours:          req.Hours,
		TotalPrice:     total,
		Status:         models.DefaultBookingStatus,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("car_id", car.ID),
		zap.Int("hours", booking.Hours),
		zap.Float64("total_price", booking.TotalPrice))
	return &booking, nil
}

// ListBookings returns the booking history with cars hydrated.
func (s *BookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	index, err := carIndex(ctx, s.store)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		bookings[i].CarID = hydrate(bookings[i].CarID, index)
	}
	return bookings, nil
}
