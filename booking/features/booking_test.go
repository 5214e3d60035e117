package features

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"car-rental/api"
	"car-rental/booking"
	"car-rental/models"
)

type recordingAPI struct {
	requests  []models.BookingRequest
	rejectMsg string
}

func (r *recordingAPI) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	r.requests = append(r.requests, req)
	if r.rejectMsg != "" {
		return nil, &api.Error{Op: "create booking", Status: 404, Message: r.rejectMsg}
	}
	return &models.Booking{ID: fmt.Sprintf("b%d", len(r.requests)), CarID: models.RefID(req.CarID)}, nil
}

type bookingTestContext struct {
	car  models.Car
	api  *recordingAPI
	flow *booking.Flow
	form booking.Form
	err  error
}

func (c *bookingTestContext) reset() {
	c.car = models.Car{}
	c.api = &recordingAPI{}
	c.flow = nil
	c.form = booking.Form{}
	c.err = nil
}

func (c *bookingTestContext) carPricedAtPerDay(id string, price float64) error {
	c.car = models.Car{ID: id, Name: id, PricePerDay: price}
	c.flow = booking.NewFlow(c.car, "1234", c.api, booking.WithCloseDelay(20*time.Millisecond))
	return nil
}

func (c *bookingTestContext) aFormForAtForHours(date, clock string, hours int) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}
	c.form.PickupDate = day
	c.form.PickupTime = clock
	c.form.Hours = hours
	return nil
}

func (c *bookingTestContext) pickupLocationAndContact(location, contact string) error {
	c.form.PickupLocation = location
	c.form.ContactInfo = contact
	return nil
}

func (c *bookingTestContext) theServerRejectsBookingsWith(msg string) error {
	c.api.rejectMsg = msg
	return nil
}

func (c *bookingTestContext) theServerAcceptsBookings() error {
	c.api.rejectMsg = ""
	return nil
}

func (c *bookingTestContext) iSubmitTheBooking() error {
	_, c.err = c.flow.Submit(context.Background(), c.form)
	return nil
}

func (c *bookingTestContext) exactlyBookingRequestsWereSent(n int) error {
	if got := len(c.api.requests); got != n {
		return fmt.Errorf("expected %d booking requests, got %d", n, got)
	}
	return nil
}

func (c *bookingTestContext) lastRequest() (models.BookingRequest, error) {
	if len(c.api.requests) == 0 {
		return models.BookingRequest{}, fmt.Errorf("no booking request was sent")
	}
	return c.api.requests[len(c.api.requests)-1], nil
}

func (c *bookingTestContext) theRequestTotalPriceIs(total float64) error {
	req, err := c.lastRequest()
	if err != nil {
		return err
	}
	if req.TotalPrice != total {
		return fmt.Errorf("expected total price %v, got %v", total, req.TotalPrice)
	}
	return nil
}

func (c *bookingTestContext) theRequestPickupTimeIs(want string) error {
	req, err := c.lastRequest()
	if err != nil {
		return err
	}
	if got := req.PickupDateTime.Format(time.RFC3339); got != want {
		return fmt.Errorf("expected pickup %s, got %s", want, got)
	}
	return nil
}

func (c *bookingTestContext) theFlowStateIs(state string) error {
	if got := c.flow.State().String(); got != state {
		return fmt.Errorf("expected state %q, got %q", state, got)
	}
	return nil
}

func (c *bookingTestContext) theFlowMessageIs(msg string) error {
	if got := c.flow.Message(); got != msg {
		return fmt.Errorf("expected message %q, got %q", msg, got)
	}
	return nil
}

func (c *bookingTestContext) theFlowCloses() error {
	select {
	case <-c.flow.Done():
	case <-time.After(time.Second):
		return fmt.Errorf("flow did not close")
	}
	if c.flow.State() != booking.Idle {
		return fmt.Errorf("expected idle after close, got %s", c.flow.State())
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &bookingTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.flow != nil {
			tc.flow.Close()
		}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^car "([^"]*)" priced at (\d+(?:\.\d+)?) per day$`, tc.carPricedAtPerDay)
	ctx.Step(`^a form for (\d{4}-\d{2}-\d{2}) at "([^"]*)" for (\d+) hours?$`, tc.aFormForAtForHours)
	ctx.Step(`^pickup location "([^"]*)" and contact "([^"]*)"$`, tc.pickupLocationAndContact)
	ctx.Step(`^the server rejects bookings with "([^"]*)"$`, tc.theServerRejectsBookingsWith)

	// When steps
	ctx.Step(`^the server accepts bookings$`, tc.theServerAcceptsBookings)
	ctx.Step(`^I submit the booking$`, tc.iSubmitTheBooking)

	// Then steps
	ctx.Step(`^exactly (\d+) booking requests? (?:was|were) sent$`, tc.exactlyBookingRequestsWereSent)
	ctx.Step(`^the request total price is (\d+(?:\.\d+)?)$`, tc.theRequestTotalPriceIs)
	ctx.Step(`^the request pickup time is "([^"]*)"$`, tc.theRequestPickupTimeIs)
	ctx.Step(`^the flow state is "([^"]*)"$`, tc.theFlowStateIs)
	ctx.Step(`^the flow message is "([^"]*)"$`, tc.theFlowMessageIs)
	ctx.Step(`^the flow closes$`, tc.theFlowCloses)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"booking.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
