package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"car-rental/models"
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// PostgresStore persists the storefront data in PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenPostgres establishes a connection to the PostgreSQL database and runs migrations
func OpenPostgres(dsn string, maxRetries int, logger *zap.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := pingWithRetry(db.Ping, maxRetries, logger); err != nil {
		db.Close()
		return nil, err
	}

	s := &PostgresStore{db: db, logger: logger}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return s, nil
}

// pingWithRetry waits for the database to accept connections.
func pingWithRetry(ping func() error, maxRetries int, logger *zap.Logger) error {
	if maxRetries < 1 {
		maxRetries = 1
	}
	var err error
	for i := 0; i < maxRetries; i++ {
		if err = ping(); err == nil {
			logger.Info("Successfully connected to database")
			return nil
		}
		logger.Warn("Failed to connect to database",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Error(err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	return fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	s.logger.Info("Checking database schema...")
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS cars (
			seq           BIGSERIAL,
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			brand         TEXT NOT NULL DEFAULT '',
			type          TEXT NOT NULL DEFAULT '',
			fuel_type     TEXT NOT NULL DEFAULT '',
			transmission  TEXT NOT NULL DEFAULT '',
			rating        NUMERIC(3,2) NOT NULL DEFAULT 0,
			price_per_day NUMERIC(10,2) NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS wishlist (
			seq        BIGSERIAL,
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			car_id     TEXT NOT NULL REFERENCES cars(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, car_id)
		);

		CREATE TABLE IF NOT EXISTS bookings (
			seq              BIGSERIAL,
			id               TEXT PRIMARY KEY,
			car_id           TEXT NOT NULL REFERENCES cars(id),
			user_id          TEXT NOT NULL,
			pickup_date_time TIMESTAMPTZ NOT NULL,
			pickup_location  TEXT NOT NULL,
			contact_info     TEXT NOT NULL,
			hours            INTEGER NOT NULL CHECK (hours BETWEEN 1 AND 12),
			total_price      NUMERIC(12,2) NOT NULL,
			status           TEXT NOT NULL DEFAULT 'Confirmed',
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_cars_seq ON cars(seq);
		CREATE INDEX IF NOT EXISTS idx_wishlist_user ON wishlist(user_id);
		CREATE INDEX IF NOT EXISTS idx_bookings_seq ON bookings(seq);
	`)
	return err
}

func (s *PostgresStore) ListCars(ctx context.Context) ([]models.Car, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, brand, type, fuel_type, transmission, rating, price_per_day
		FROM cars
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying cars: %w", err)
	}
	defer rows.Close()

	cars := []models.Car{}
	for rows.Next() {
		var car models.Car
		if err := rows.Scan(&car.ID, &car.Name, &car.Brand, &car.Type, &car.FuelType,
			&car.Transmission, &car.Rating, &car.PricePerDay); err != nil {
			return nil, fmt.Errorf("error scanning car: %w", err)
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func (s *PostgresStore) GetCar(ctx context.Context, id string) (*models.Car, error) {
	var car models.Car
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, brand, type, fuel_type, transmission, rating, price_per_day
		FROM cars
		WHERE id = $1
	`, id).Scan(&car.ID, &car.Name, &car.Brand, &car.Type, &car.FuelType,
		&car.Transmission, &car.Rating, &car.PricePerDay)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &car, nil
}

func (s *PostgresStore) CountCars(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cars`).Scan(&n)
	return n, err
}

func (s *PostgresStore) InsertCars(ctx context.Context, cars []models.Car) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cars (id, name, brand, type, fuel_type, transmission, rating, price_per_day)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, car := range cars {
		if _, err := stmt.ExecContext(ctx, car.ID, car.Name, car.Brand, car.Type,
			car.FuelType, car.Transmission, car.Rating, car.PricePerDay); err != nil {
			return fmt.Errorf("insert car %s: %w", car.ID, translatePQ(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cars: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListWishlist(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, car_id, created_at
		FROM wishlist
		WHERE user_id = $1
		ORDER BY seq
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying wishlist: %w", err)
	}
	defer rows.Close()

	entries := []models.WishlistEntry{}
	for rows.Next() {
		var e models.WishlistEntry
		var carID string
		if err := rows.Scan(&e.ID, &e.UserID, &carID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning wishlist entry: %w", err)
		}
		e.CarID = models.RefID(carID)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) AddWishlist(ctx context.Context, entry models.WishlistEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wishlist (id, user_id, car_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, entry.ID, entry.UserID, entry.CarID.ID(), entry.CreatedAt)
	if err != nil {
		return translatePQ(err)
	}
	return nil
}

func (s *PostgresStore) RemoveWishlist(ctx context.Context, userID, id string) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM wishlist
		WHERE user_id = $1 AND (id = $2 OR car_id = $2)
	`, userID, id)
	if err != nil {
		return 0, fmt.Errorf("failed to remove wishlist entry: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *PostgresStore) CreateBooking(ctx context.Context, b models.Booking) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (id, car_id, user_id, pickup_date_time, pickup_location,
			contact_info, hours, total_price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, b.ID, b.CarID.ID(), b.UserID, b.PickupDateTime, b.PickupLocation,
		b.ContactInfo, b.Hours, b.TotalPrice, b.StatusOrDefault(), b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", translatePQ(err))
	}
	return nil
}

func (s *PostgresStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, car_id, user_id, pickup_date_time, pickup_location,
			contact_info, hours, total_price, status, created_at
		FROM bookings
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		var carID string
		if err := rows.Scan(&b.ID, &carID, &b.UserID, &b.PickupDateTime, &b.PickupLocation,
			&b.ContactInfo, &b.Hours, &b.TotalPrice, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		b.CarID = models.RefID(carID)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// translatePQ maps PostgreSQL constraint errors onto store sentinels.
func translatePQ(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", pqErr.Constraint, ErrDuplicate)
	}
	return err
}
