package features

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/cucumber/godog"
	"go.uber.org/zap"

	"car-rental/api"
	"car-rental/catalog"
	"car-rental/models"
	"car-rental/notify"
	"car-rental/wishlist"
)

// rentalServer is a minimal wishlist API that can be told to fail the next request.
type rentalServer struct {
	mu         sync.Mutex
	cars       []models.Car
	entries    []models.WishlistEntry
	failStatus int
	failMsg    string
}

func (s *rentalServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failStatus != 0 {
		w.WriteHeader(s.failStatus)
		if s.failMsg != "" {
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{Message: s.failMsg})
		}
		s.failStatus, s.failMsg = 0, ""
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/cars":
		_ = json.NewEncoder(w).Encode(s.cars)
	case r.Method == http.MethodGet && r.URL.Path == "/wishlist":
		_ = json.NewEncoder(w).Encode(s.entries)
	case r.Method == http.MethodPost && r.URL.Path == "/wishlist":
		var req models.WishlistRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		entry := models.WishlistEntry{ID: fmt.Sprintf("w%d", len(s.entries)+1), CarID: models.RefID(req.CarID)}
		s.entries = append(s.entries, entry)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(entry)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/wishlist/"):
		id := strings.TrimPrefix(r.URL.Path, "/wishlist/")
		kept := s.entries[:0]
		for _, e := range s.entries {
			if !e.Matches(id) {
				kept = append(kept, e)
			}
		}
		s.entries = kept
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Message: "Removed from wishlist"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type wishlistTestContext struct {
	server   *rentalServer
	http     *httptest.Server
	store    *catalog.Store
	sync     *wishlist.Synchronizer
	notifier *notify.Recorder
	err      error
}

func (c *wishlistTestContext) reset() {
	if c.http != nil {
		c.http.Close()
	}
	c.server = &rentalServer{}
	c.http = httptest.NewServer(c.server)
	client := api.New(c.http.URL)
	c.store = catalog.NewStore(client, zap.NewNop())
	c.notifier = &notify.Recorder{}
	c.sync = wishlist.New(c.store, client, c.notifier, zap.NewNop())
	c.err = nil
}

func (c *wishlistTestContext) load() error {
	return c.store.Load(context.Background())
}

func (c *wishlistTestContext) theCatalogContainsCarNamed(id, name string) error {
	c.server.cars = append(c.server.cars, models.Car{ID: id, Name: name, PricePerDay: 500})
	return nil
}

func (c *wishlistTestContext) theWishlistIsEmpty() error {
	c.server.entries = nil
	return c.load()
}

func (c *wishlistTestContext) carIsAlreadyWishlistedAsEntry(carID, entryID string) error {
	c.server.entries = []models.WishlistEntry{{ID: entryID, CarID: models.RefID(carID)}}
	return c.load()
}

func (c *wishlistTestContext) theAPIRejectsTheNextRequestWithStatus(status int) error {
	c.server.failStatus = status
	return nil
}

func (c *wishlistTestContext) theAPIRejectsTheNextRequestWithStatusAndMessage(status int, msg string) error {
	c.server.failStatus = status
	c.server.failMsg = msg
	return nil
}

func (c *wishlistTestContext) iToggleCar(id string) error {
	_, c.err = c.sync.Toggle(context.Background(), id)
	return nil
}

func (c *wishlistTestContext) carIsWishlisted(id string) error {
	if !c.sync.IsWishlisted(id) {
		return fmt.Errorf("expected car %q to be wishlisted", id)
	}
	return nil
}

func (c *wishlistTestContext) carIsNotWishlisted(id string) error {
	if c.sync.IsWishlisted(id) {
		return fmt.Errorf("expected car %q not to be wishlisted", id)
	}
	return nil
}

func (c *wishlistTestContext) theWishlistHasEntries(n int) error {
	if got := len(c.store.Wishlist()); got != n {
		return fmt.Errorf("expected %d wishlist entries, got %d", n, got)
	}
	return nil
}

func (c *wishlistTestContext) theSuccessNotificationIs(msg string) error {
	if c.err != nil {
		return fmt.Errorf("expected success but got error: %v", c.err)
	}
	if got, _ := c.notifier.Last(); got != msg {
		return fmt.Errorf("expected success notification %q, got %q", msg, got)
	}
	return nil
}

func (c *wishlistTestContext) theErrorNotificationIs(msg string) error {
	if c.err == nil {
		return fmt.Errorf("expected an error")
	}
	if _, got := c.notifier.Last(); got != msg {
		return fmt.Errorf("expected error notification %q, got %q", msg, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &wishlistTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc.http.Close()
		tc.http = nil
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the catalog contains car "([^"]*)" named "([^"]*)"$`, tc.theCatalogContainsCarNamed)
	ctx.Step(`^the wishlist is empty$`, tc.theWishlistIsEmpty)
	ctx.Step(`^car "([^"]*)" is already wishlisted as entry "([^"]*)"$`, tc.carIsAlreadyWishlistedAsEntry)
	ctx.Step(`^the API rejects the next request with status (\d+)$`, tc.theAPIRejectsTheNextRequestWithStatus)
	ctx.Step(`^the API rejects the next request with status (\d+) and message "([^"]*)"$`, tc.theAPIRejectsTheNextRequestWithStatusAndMessage)

	// When steps
	ctx.Step(`^I toggle car "([^"]*)"$`, tc.iToggleCar)

	// Then steps
	ctx.Step(`^car "([^"]*)" is wishlisted$`, tc.carIsWishlisted)
	ctx.Step(`^car "([^"]*)" is not wishlisted$`, tc.carIsNotWishlisted)
	ctx.Step(`^the wishlist has (\d+) entr(?:y|ies)$`, tc.theWishlistHasEntries)
	ctx.Step(`^the success notification is "([^"]*)"$`, tc.theSuccessNotificationIs)
	ctx.Step(`^the error notification is "([^"]*)"$`, tc.theErrorNotificationIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"wishlist.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
