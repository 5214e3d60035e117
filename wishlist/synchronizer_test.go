package wishlist

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"car-rental/api"
	"car-rental/catalog"
	"car-rental/models"
	"car-rental/notify"
)

type fakeSource struct {
	cars     []models.Car
	wishlist []models.WishlistEntry
}

func (f *fakeSource) ListCars(context.Context) ([]models.Car, error) { return f.cars, nil }

func (f *fakeSource) ListWishlist(context.Context) ([]models.WishlistEntry, error) {
	return f.wishlist, nil
}

type fakeAPI struct {
	mu       sync.Mutex
	addErr   error
	delErr   error
	adds     []string
	removes  []string
	blockAdd chan struct{}
	started  chan struct{}
}

func (f *fakeAPI) AddWishlist(ctx context.Context, carID string) (*models.WishlistEntry, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.blockAdd != nil {
		<-f.blockAdd
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adds = append(f.adds, carID)
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &models.WishlistEntry{ID: "w-" + carID, CarID: models.RefID(carID)}, nil
}

func (f *fakeAPI) RemoveWishlist(ctx context.Context, carID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes = append(f.removes, carID)
	return f.delErr
}

func newSynchronizer(t *testing.T, remote API, entries ...models.WishlistEntry) (*Synchronizer, *catalog.Store, *notify.Recorder) {
	t.Helper()
	src := &fakeSource{
		cars:     []models.Car{{ID: "k1", Name: "Swift", Brand: "Maruti", PricePerDay: 500}},
		wishlist: entries,
	}
	store := catalog.NewStore(src, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))

	rec := &notify.Recorder{}
	return New(store, remote, rec, zap.NewNop()), store, rec
}

func TestToggleAddsAndHydrates(t *testing.T) {
	remote := &fakeAPI{}
	s, store, rec := newSynchronizer(t, remote)

	on, err := s.Toggle(context.Background(), "k1")
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, s.IsWishlisted("k1"))

	entries := store.Wishlist()
	require.Len(t, entries, 1)
	car, ok := entries[0].CarID.Car()
	require.True(t, ok)
	assert.Equal(t, "Swift", car.Name)

	success, _ := rec.Last()
	assert.Equal(t, "Added to wishlist", success)
}

func TestToggleAddFailureLeavesStateUnchanged(t *testing.T) {
	remote := &fakeAPI{addErr: &api.Error{Status: 500, Message: "Failed to add to wishlist"}}
	s, store, rec := newSynchronizer(t, remote)

	on, err := s.Toggle(context.Background(), "k1")
	require.Error(t, err)
	assert.False(t, on)
	assert.False(t, s.IsWishlisted("k1"))
	assert.Empty(t, store.Wishlist())

	_, failure := rec.Last()
	assert.Equal(t, "Failed to add to wishlist", failure)
	assert.Empty(t, rec.Successes)
}

func TestToggleRemovesByCarID(t *testing.T) {
	remote := &fakeAPI{}
	s, store, rec := newSynchronizer(t, remote,
		models.WishlistEntry{ID: "w1", CarID: models.RefID("k1")},
		models.WishlistEntry{ID: "w2", CarID: models.RefID("k2")},
	)

	on, err := s.Toggle(context.Background(), "k1")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, []string{"k1"}, remote.removes)
	require.Len(t, store.Wishlist(), 1)
	assert.Equal(t, "w2", store.Wishlist()[0].ID)

	success, _ := rec.Last()
	assert.Equal(t, "Removed from wishlist", success)
}

func TestToggleRemoveFailureKeepsEntry(t *testing.T) {
	remote := &fakeAPI{delErr: errors.New("connection refused")}
	s, store, rec := newSynchronizer(t, remote, models.WishlistEntry{ID: "w1", CarID: models.RefID("k1")})

	on, err := s.Toggle(context.Background(), "k1")
	require.Error(t, err)
	assert.True(t, on)
	assert.Len(t, store.Wishlist(), 1)

	_, failure := rec.Last()
	assert.Equal(t, "connection refused", failure)
}

func TestIsWishlistedMatchesEntryID(t *testing.T) {
	s, _, _ := newSynchronizer(t, &fakeAPI{}, models.WishlistEntry{ID: "w1", CarID: models.RefID("k1")})

	assert.True(t, s.IsWishlisted("w1"))
	assert.True(t, s.IsWishlisted("k1"))
	assert.False(t, s.IsWishlisted("k2"))
}

func TestAddThenRemoveRoundTrip(t *testing.T) {
	s, store, _ := newSynchronizer(t, &fakeAPI{})
	before := store.Wishlist()

	_, err := s.Toggle(context.Background(), "k1")
	require.NoError(t, err)
	_, err = s.Toggle(context.Background(), "k1")
	require.NoError(t, err)

	assert.Equal(t, len(before), len(store.Wishlist()))
	assert.False(t, s.IsWishlisted("k1"))
}

func TestToggleRefusedWhileInFlight(t *testing.T) {
	remote := &fakeAPI{blockAdd: make(chan struct{}), started: make(chan struct{})}
	s, _, _ := newSynchronizer(t, remote)

	done := make(chan error, 1)
	go func() {
		_, err := s.Toggle(context.Background(), "k1")
		done <- err
	}()

	<-remote.started
	assert.True(t, s.InProgress())

	_, err := s.Toggle(context.Background(), "k2")
	assert.ErrorIs(t, err, ErrToggleInProgress)

	close(remote.blockAdd)
	require.NoError(t, <-done)
	assert.False(t, s.InProgress())
	assert.Equal(t, []string{"k1"}, remote.adds)
}
