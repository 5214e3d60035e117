package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"car-rental/models"
)

type carRow struct {
	Seq          uint   `gorm:"primaryKey;autoIncrement"`
	ID           string `gorm:"size:64;uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	Brand        string
	Type         string `gorm:"size:32"`
	FuelType     string `gorm:"size:32"`
	Transmission string `gorm:"size:32"`
	Rating       float64
	PricePerDay  float64
}

func (carRow) TableName() string { return "cars" }

func (r carRow) model() models.Car {
	return models.Car{
		ID:           r.ID,
		Name:         r.Name,
		Brand:        r.Brand,
		Type:         r.Type,
		FuelType:     r.FuelType,
		Transmission: r.Transmission,
		Rating:       r.Rating,
		PricePerDay:  r.PricePerDay,
	}
}

type wishlistRow struct {
	Seq       uint   `gorm:"primaryKey;autoIncrement"`
	ID        string `gorm:"size:64;uniqueIndex;not null"`
	UserID    string `gorm:"size:64;not null;uniqueIndex:idx_wishlist_user_car"`
	CarID     string `gorm:"size:64;not null;uniqueIndex:idx_wishlist_user_car"`
	CreatedAt time.Time
}

func (wishlistRow) TableName() string { return "wishlist" }

type bookingRow struct {
	Seq            uint   `gorm:"primaryKey;autoIncrement"`
	ID             string `gorm:"size:64;uniqueIndex;not null"`
	CarID          string `gorm:"size:64;not null;index"`
	UserID         string `gorm:"size:64;not null"`
	PickupDateTime time.Time
	PickupLocation string
	ContactInfo    string
	Hours          int
	TotalPrice     float64
	Status         string `gorm:"size:32;default:Confirmed"`
	CreatedAt      time.Time
}

func (bookingRow) TableName() string { return "bookings" }

// MySQLStore persists the storefront data in MySQL through gorm.
type MySQLStore struct {
	db *gorm.DB
}

// OpenMySQL connects with retries and auto-migrates the schema.
func OpenMySQL(dsn string, maxRetries int, logger *zap.Logger) (*MySQLStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := pingWithRetry(sqlDB.Ping, maxRetries, logger); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if err := db.AutoMigrate(&carRow{}, &wishlistRow{}, &bookingRow{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("mysql: migrate: %w", err)
	}
	return &MySQLStore{db: db}, nil
}

func (s *MySQLStore) ListCars(ctx context.Context) ([]models.Car, error) {
	var rows []carRow
	if err := s.db.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error querying cars: %w", err)
	}
	cars := make([]models.Car, 0, len(rows))
	for _, r := range rows {
		cars = append(cars, r.model())
	}
	return cars, nil
}

func (s *MySQLStore) GetCar(ctx context.Context, id string) (*models.Car, error) {
	var row carRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	car := row.model()
	return &car, nil
}

func (s *MySQLStore) CountCars(ctx context.Context) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&carRow{}).Count(&n).Error
	return int(n), err
}

func (s *MySQLStore) InsertCars(ctx context.Context, cars []models.Car) error {
	if len(cars) == 0 {
		return nil
	}
	rows := make([]carRow, 0, len(cars))
	for _, c := range cars {
		rows = append(rows, carRow{
			ID:           c.ID,
			Name:         c.Name,
			Brand:        c.Brand,
			Type:         c.Type,
			FuelType:     c.FuelType,
			Transmission: c.Transmission,
			Rating:       c.Rating,
			PricePerDay:  c.PricePerDay,
		})
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert cars: %w", translateGorm(err))
	}
	return nil
}

func (s *MySQLStore) ListWishlist(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	var rows []wishlistRow
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error querying wishlist: %w", err)
	}
	entries := make([]models.WishlistEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, models.WishlistEntry{
			ID:        r.ID,
			UserID:    r.UserID,
			CarID:     models.RefID(r.CarID),
			CreatedAt: r.CreatedAt,
		})
	}
	return entries, nil
}

func (s *MySQLStore) AddWishlist(ctx context.Context, entry models.WishlistEntry) error {
	row := wishlistRow{
		ID:        entry.ID,
		UserID:    entry.UserID,
		CarID:     entry.CarID.ID(),
		CreatedAt: entry.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translateGorm(err)
	}
	return nil
}

func (s *MySQLStore) RemoveWishlist(ctx context.Context, userID, id string) (int, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND (id = ? OR car_id = ?)", userID, id, id).
		Delete(&wishlistRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to remove wishlist entry: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

func (s *MySQLStore) CreateBooking(ctx context.Context, b models.Booking) error {
	row := bookingRow{
		ID:             b.ID,
		CarID:          b.CarID.ID(),
		UserID:         b.UserID,
		PickupDateTime: b.PickupDateTime,
		PickupLocation: b.PickupLocation,
		ContactInfo:    b.ContactInfo,
		Hours:          b.Hours,
		TotalPrice:     b.TotalPrice,
		Status:         b.StatusOrDefault(),
		CreatedAt:      b.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", translateGorm(err))
	}
	return nil
}

func (s *MySQLStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var rows []bookingRow
	if err := s.db.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	bookings := make([]models.Booking, 0, len(rows))
	for _, r := range rows {
		bookings = append(bookings, models.Booking{
			ID:             r.ID,
			CarID:          models.RefID(r.CarID),
			UserID:         r.UserID,
			PickupDateTime: r.PickupDateTime,
			PickupLocation: r.PickupLocation,
			ContactInfo:    r.ContactInfo,
			Hours:          r.Hours,
			TotalPrice:     r.TotalPrice,
			Status:         r.Status,
			CreatedAt:      r.CreatedAt,
		})
	}
	return bookings, nil
}

func (s *MySQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translateGorm(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%v: %w", err, ErrDuplicate)
	}
	return err
}
