package database

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	memdb "github.com/hashicorp/go-memdb"

	"car-rental/models"
)

const (
	tableCars     = "cars"
	tableWishlist = "wishlist"
	tableBookings = "bookings"
)

type carRecord struct {
	ID  string
	Seq string
	Car models.Car
}

type wishlistRecord struct {
	ID        string
	UserID    string
	CarID     string
	Seq       string
	CreatedAt time.Time
}

type bookingRecord struct {
	ID      string
	Seq     string
	Booking models.Booking
}

func memorySchema() *memdb.DBSchema {
	idIndex := func() *memdb.IndexSchema {
		return &memdb.IndexSchema{Name: "id", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "ID"}}
	}
	seqIndex := func() *memdb.IndexSchema {
		return &memdb.IndexSchema{Name: "seq", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "Seq"}}
	}

	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableCars: {
				Name:    tableCars,
				Indexes: map[string]*memdb.IndexSchema{"id": idIndex(), "seq": seqIndex()},
			},
			tableWishlist: {
				Name: tableWishlist,
				Indexes: map[string]*memdb.IndexSchema{
					"id":  idIndex(),
					"seq": seqIndex(),
					"user": {
						Name:    "user",
						Indexer: &memdb.StringFieldIndex{Field: "UserID"},
					},
					"user_car": {
						Name:   "user_car",
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "UserID"},
								&memdb.StringFieldIndex{Field: "CarID"},
							},
						},
					},
				},
			},
			tableBookings: {
				Name:    tableBookings,
				Indexes: map[string]*memdb.IndexSchema{"id": idIndex(), "seq": seqIndex()},
			},
		},
	}
}

// MemoryStore keeps everything in an indexed in-memory database.
// It is the default store for local runs and tests.
type MemoryStore struct {
	db  *memdb.MemDB
	seq atomic.Uint64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() (*MemoryStore, error) {
	db, err := memdb.NewMemDB(memorySchema())
	if err != nil {
		return nil, fmt.Errorf("memdb: %w", err)
	}
	return &MemoryStore{db: db}, nil
}

// nextSeq returns a sortable insertion key.
func (s *MemoryStore) nextSeq() string {
	return fmt.Sprintf("%020d", s.seq.Add(1))
}

func (s *MemoryStore) ListCars(ctx context.Context) ([]models.Car, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableCars, "seq")
	if err != nil {
		return nil, err
	}
	cars := []models.Car{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		cars = append(cars, obj.(*carRecord).Car)
	}
	return cars, nil
}

func (s *MemoryStore) GetCar(ctx context.Context, id string) (*models.Car, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	obj, err := txn.First(tableCars, "id", id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrNotFound
	}
	car := obj.(*carRecord).Car
	return &car, nil
}

func (s *MemoryStore) CountCars(ctx context.Context) (int, error) {
	cars, err := s.ListCars(ctx)
	if err != nil {
		return 0, err
	}
	return len(cars), nil
}

func (s *MemoryStore) InsertCars(ctx context.Context, cars []models.Car) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	for _, car := range cars {
		existing, err := txn.First(tableCars, "id", car.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("car %s: %w", car.ID, ErrDuplicate)
		}
		if err := txn.Insert(tableCars, &carRecord{ID: car.ID, Seq: s.nextSeq(), Car: car}); err != nil {
			return fmt.Errorf("insert car %s: %w", car.ID, err)
		}
	}
	txn.Commit()
	return nil
}

func (s *MemoryStore) ListWishlist(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableWishlist, "seq")
	if err != nil {
		return nil, err
	}
	entries := []models.WishlistEntry{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		rec := obj.(*wishlistRecord)
		if rec.UserID != userID {
			continue
		}
		entries = append(entries, models.WishlistEntry{
			ID:        rec.ID,
			UserID:    rec.UserID,
			CarID:     models.RefID(rec.CarID),
			CreatedAt: rec.CreatedAt,
		})
	}
	return entries, nil
}

func (s *MemoryStore) AddWishlist(ctx context.Context, entry models.WishlistEntry) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	carID := entry.CarID.ID()
	existing, err := txn.First(tableWishlist, "user_car", entry.UserID, carID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicate
	}

	rec := &wishlistRecord{
		ID:        entry.ID,
		UserID:    entry.UserID,
		CarID:     carID,
		Seq:       s.nextSeq(),
		CreatedAt: entry.CreatedAt,
	}
	if err := txn.Insert(tableWishlist, rec); err != nil {
		return fmt.Errorf("insert wishlist entry: %w", err)
	}
	txn.Commit()
	return nil
}

func (s *MemoryStore) RemoveWishlist(ctx context.Context, userID, id string) (int, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	it, err := txn.Get(tableWishlist, "user", userID)
	if err != nil {
		return 0, err
	}
	var matched []*wishlistRecord
	for obj := it.Next(); obj != nil; obj = it.Next() {
		rec := obj.(*wishlistRecord)
		if rec.ID == id || rec.CarID == id {
			matched = append(matched, rec)
		}
	}
	for _, rec := range matched {
		if err := txn.Delete(tableWishlist, rec); err != nil {
			return 0, fmt.Errorf("delete wishlist entry %s: %w", rec.ID, err)
		}
	}
	txn.Commit()
	return len(matched), nil
}

func (s *MemoryStore) CreateBooking(ctx context.Context, booking models.Booking) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	booking.CarID = models.RefID(booking.CarID.ID())
	if err := txn.Insert(tableBookings, &bookingRecord{ID: booking.ID, Seq: s.nextSeq(), Booking: booking}); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	txn.Commit()
	return nil
}

func (s *MemoryStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableBookings, "seq")
	if err != nil {
		return nil, err
	}
	bookings := []models.Booking{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		bookings = append(bookings, obj.(*bookingRecord).Booking)
	}
	return bookings, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
