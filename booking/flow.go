// Package booking drives a single booking submission for one car.
package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"car-rental/api"
	"car-rental/models"
	"car-rental/notify"
	"car-rental/pricing"
)

// State is the position of a Flow in its submission lifecycle.
type State int

const (
	Idle State = iota
	Validating
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	// DefaultCloseDelay is how long a successful flow stays open.
	DefaultCloseDelay = 2 * time.Second
	// DefaultPickupTime pre-fills the pickup time field.
	DefaultPickupTime = "09:00"

	pickupTimeLayout = "15:04"
	msgSuccess       = "Booking successful!"
)

var (
	ErrIncompleteForm     = errors.New("Please complete all fields")
	ErrSubmissionInFlight = errors.New("booking submission already in progress")
	ErrFlowClosed         = errors.New("booking flow is closed")
)

// Form is the user's booking input.
type Form struct {
	PickupDate     time.Time
	PickupTime     string // HH:MM
	PickupLocation string
	ContactInfo    string
	Hours          int
}

// NewForm returns a form for today with the default pickup time and one hour.
func NewForm(now time.Time) Form {
	return Form{
		PickupDate: now,
		PickupTime: DefaultPickupTime,
		Hours:      pricing.MinHours,
	}
}

// PickupDateTime combines the pickup date and time in the date's location.
func (f Form) PickupDateTime() (time.Time, error) {
	t, err := time.Parse(pickupTimeLayout, strings.TrimSpace(f.PickupTime))
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := f.PickupDate.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, f.PickupDate.Location()), nil
}

func (f Form) complete() bool {
	return !f.PickupDate.IsZero() &&
		strings.TrimSpace(f.PickupTime) != "" &&
		strings.TrimSpace(f.PickupLocation) != "" &&
		strings.TrimSpace(f.ContactInfo) != ""
}

// API creates bookings on the rental service.
type API interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
}

// Option configures a Flow.
type Option func(*Flow)

// WithCloseDelay sets how long the flow waits after success before closing.
func WithCloseDelay(d time.Duration) Option {
	return func(f *Flow) { f.closeDelay = d }
}

// WithOnClose registers a callback run once when the flow closes.
func WithOnClose(fn func()) Option {
	return func(f *Flow) { f.onClose = fn }
}

// WithNotifier sets where success and failure messages are shown.
func WithNotifier(n notify.Notifier) Option {
	return func(f *Flow) { f.notifier = n }
}

// WithLogger sets the flow logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Flow) { f.logger = logger }
}

// Flow submits a booking for one car. It accepts one submission at a time.
// After a failure the form may be corrected and submitted again; after a
// success the flow closes itself once the close delay has passed.
type Flow struct {
	car        models.Car
	userID     string
	api        API
	notifier   notify.Notifier
	logger     *zap.Logger
	closeDelay time.Duration
	onClose    func()

	mu      sync.Mutex
	state   State
	message string
	err     error
	booking *models.Booking
	closed  bool
	timer   *time.Timer
	done    chan struct{}
}

// NewFlow creates an idle Flow booking car on behalf of userID.
func NewFlow(car models.Car, userID string, remote API, opts ...Option) *Flow {
	f := &Flow{
		car:        car,
		userID:     userID,
		api:        remote,
		notifier:   notify.Nop{},
		logger:     zap.NewNop(),
		closeDelay: DefaultCloseDelay,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Car returns the car being booked.
func (f *Flow) Car() models.Car { return f.car }

// Price returns the total for hours at this car's rate.
func (f *Flow) Price(hours int) float64 {
	return pricing.Price(f.car, hours)
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Message returns the last success or failure message.
func (f *Flow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Err returns the error of the last failed submission.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Booking returns the created booking after a success.
func (f *Flow) Booking() *models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.booking
}

// Closed reports whether the flow has closed.
func (f *Flow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Done is closed when the flow closes.
func (f *Flow) Done() <-chan struct{} {
	return f.done
}

// Submit validates form and sends exactly one create-booking request.
func (f *Flow) Submit(ctx context.Context, form Form) (*models.Booking, error) {
	f.mu.Lock()
	switch {
	case f.closed, f.state == Succeeded:
		f.mu.Unlock()
		return nil, ErrFlowClosed
	case f.state == Validating, f.state == Submitting:
		f.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	f.state = Validating
	f.err = nil
	f.message = ""

	pickup, err := form.PickupDateTime()
	if !form.complete() || err != nil {
		f.failLocked(ErrIncompleteForm, ErrIncompleteForm.Error())
		f.mu.Unlock()
		f.notifier.Error(ErrIncompleteForm.Error())
		return nil, ErrIncompleteForm
	}

	req := models.BookingRequest{
		CarID:          f.car.ID,
		UserID:         f.userID,
		PickupDateTime: pickup,
		PickupLocation: form.PickupLocation,
		ContactInfo:    form.ContactInfo,
		Hours:          form.Hours,
		TotalPrice:     f.Price(form.Hours),
	}
	f.state = Submitting
	f.mu.Unlock()

	f.logger.Debug("submitting booking",
		zap.String("car_id", req.CarID),
		zap.Time("pickup", req.PickupDateTime),
		zap.Int("hours", req.Hours),
		zap.Float64("total_price", req.TotalPrice))

	booking, err := f.api.CreateBooking(ctx, req)

	f.mu.Lock()
	if f.closed {
		// dismissed while the request was in flight
		f.booking = booking
		f.mu.Unlock()
		return booking, err
	}
	if err != nil {
		msg := api.MessageOf(err)
		f.failLocked(err, msg)
		f.mu.Unlock()

		f.logger.Warn("booking failed", zap.String("car_id", req.CarID), zap.Error(err))
		f.notifier.Error(msg)
		return nil, err
	}

	f.state = Succeeded
	f.booking = booking
	f.message = msgSuccess
	f.timer = time.AfterFunc(f.closeDelay, f.Close)
	f.mu.Unlock()

	f.logger.Info("booking created", zap.String("booking_id", booking.ID), zap.String("car_id", req.CarID))
	f.notifier.Success(msgSuccess)
	return booking, nil
}

// failLocked records a failure. Callers notify after releasing f.mu.
func (f *Flow) failLocked(err error, msg string) {
	f.state = Failed
	f.err = err
	f.message = msg
}

// Close returns the flow to Idle, marks it closed and runs the close callback.
// Only the first call has any effect.
func (f *Flow) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	if f.timer != nil {
		f.timer.Stop()
	}
	f.state = Idle
	f.closed = true
	onClose := f.onClose
	close(f.done)
	f.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}
