package catalog

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"car-rental/models"
)

const filterCacheSize = 128

// Source fetches the catalog and the wishlist from the rental API.
type Source interface {
	ListCars(ctx context.Context) ([]models.Car, error)
	ListWishlist(ctx context.Context) ([]models.WishlistEntry, error)
}

// Store holds the fetched cars and wishlist for one browse view.
type Store struct {
	source Source
	logger *zap.Logger

	mu       sync.RWMutex
	cars     []models.Car
	wishlist []models.WishlistEntry
	loaded   bool

	// filtered results keyed by Criteria; purged whenever cars change
	cache *lru.Cache
}

// NewStore creates an empty Store backed by source.
func NewStore(source Source, logger *zap.Logger) *Store {
	cache, err := lru.New(filterCacheSize)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &Store{
		source: source,
		logger: logger,
		cache:  cache,
	}
}

// Load fetches cars and wishlist concurrently. Both must succeed; if either
// fails the store keeps its previous contents and the merged error is returned.
func (s *Store) Load(ctx context.Context) error {
	var (
		wg          sync.WaitGroup
		cars        []models.Car
		wishlist    []models.WishlistEntry
		carsErr     error
		wishlistErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		cars, carsErr = s.source.ListCars(ctx)
	}()
	go func() {
		defer wg.Done()
		wishlist, wishlistErr = s.source.ListWishlist(ctx)
	}()
	wg.Wait()

	if err := multierr.Append(carsErr, wishlistErr); err != nil {
		s.logger.Warn("catalog load failed", zap.Error(err))
		return fmt.Errorf("load catalog: %w", err)
	}

	s.mu.Lock()
	s.cars = cars
	s.wishlist = wishlist
	s.loaded = true
	s.cache.Purge()
	s.mu.Unlock()

	s.logger.Info("catalog loaded",
		zap.Int("cars", len(cars)),
		zap.Int("wishlist", len(wishlist)))
	return nil
}

// Loaded reports whether a Load has completed successfully.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Cars returns a copy of the full catalog.
func (s *Store) Cars() []models.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Car(nil), s.cars...)
}

// Car looks up a catalog car by id.
func (s *Store) Car(id string) (models.Car, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, car := range s.cars {
		if car.ID == id {
			return car, true
		}
	}
	return models.Car{}, false
}

// Wishlist returns a copy of the current wishlist entries.
func (s *Store) Wishlist() []models.WishlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.WishlistEntry(nil), s.wishlist...)
}

// AppendWishlist adds an entry to the local wishlist.
func (s *Store) AppendWishlist(entry models.WishlistEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = append(s.wishlist, entry)
}

// RemoveWishlist drops every entry matching id and returns how many were removed.
func (s *Store) RemoveWishlist(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.WishlistEntry, 0, len(s.wishlist))
	for _, e := range s.wishlist {
		if !e.Matches(id) {
			kept = append(kept, e)
		}
	}
	removed := len(s.wishlist) - len(kept)
	s.wishlist = kept
	return removed
}

// Filtered returns the cars matching c. Results are memoized per Criteria.
// Cache reads and writes happen under the read lock so a concurrent Load,
// which purges under the write lock, never leaves a stale entry behind.
func (s *Store) Filtered(c Criteria) []models.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.cache.Get(c); ok {
		return append([]models.Car(nil), v.([]models.Car)...)
	}
	out := Filter(s.cars, c)
	s.cache.Add(c, out)
	return append([]models.Car(nil), out...)
}

// Page is one rendered page of the filtered catalog.
type Page struct {
	Cars   []models.Car
	Number int
	// From and To are the 1-based positions shown, To inclusive.
	From  int
	To    int
	Total int
	Nav   Navigation
}

// Empty reports whether no cars match the filters.
func (p Page) Empty() bool {
	return p.Total == 0
}

// Page filters the catalog with c and returns the requested page.
func (s *Store) Page(c Criteria, page int) Page {
	filtered := s.Filtered(c)
	cars := Paginate(filtered, page)

	p := Page{
		Cars:   cars,
		Number: page,
		Total:  len(filtered),
		Nav:    Navigate(page, TotalPages(len(filtered))),
	}
	if len(cars) > 0 {
		p.From = (page-1)*PageSize + 1
		p.To = p.From + len(cars) - 1
	}
	return p
}
