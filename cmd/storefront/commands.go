package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"car-rental/api"
	"car-rental/auth"
	"car-rental/booking"
	"car-rental/catalog"
	"car-rental/models"
	"car-rental/pricing"
	"car-rental/wishlist"
)

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.session.Login(*email, *password); err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	a.notifier.Success(auth.MsgLoggedIn)
	return nil
}

func runDemoCredentials(ctx context.Context, a *app, args []string) error {
	email, password := auth.DemoCredentials()
	fmt.Fprintf(a.out, "Email:    %s\nPassword: %s\n", email, password)
	return nil
}

func runBrowse(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("browse")
	carType := fs.String("type", "", "car type ("+strings.Join(models.CarTypes, ", ")+")")
	fuel := fs.String("fuel", "", "fuel type ("+strings.Join(models.FuelTypes, ", ")+")")
	transmission := fs.String("transmission", "", "transmission ("+strings.Join(models.Transmissions, ", ")+")")
	minRating := fs.Float64("min-rating", 0, "minimum rating ("+ratingOptions()+")")
	maxPrice := fs.Float64("max-price", 0, "maximum price per day")
	search := fs.String("search", "", "search car names")
	page := fs.Int("page", 1, "page number")
	clearFilters := fs.Bool("clear", false, "drop every filter and the search term")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *page < 1 {
		return fmt.Errorf("--page must be at least 1")
	}

	store := catalog.NewStore(a.client, a.logger)
	if err := store.Load(ctx); err != nil {
		a.notifier.Error("Failed to load cars")
		return err
	}

	view := catalog.NewView(catalog.WithViewNotifier(a.notifier))
	view.Update(func(c *catalog.Criteria) {
		c.Type = *carType
		c.FuelType = *fuel
		c.Transmission = *transmission
		c.MinRating = *minRating
		c.MaxPrice = *maxPrice
	})
	view.SetSearch(*search)
	if *clearFilters {
		view.Clear()
	}
	view.SetPage(*page)

	wl := wishlist.New(store, a.client, a.notifier, a.logger)
	p := view.Render(store)
	if len(p.Cars) == 0 && !p.Empty() {
		// past the end: show the last page instead
		view.SetPage(p.Nav.Total)
		p = view.Render(store)
	}
	printPage(a.out, p, wl.IsWishlisted)
	return nil
}

func runWishlist(ctx context.Context, a *app, args []string) error {
	store := catalog.NewStore(a.client, a.logger)
	if err := store.Load(ctx); err != nil {
		a.notifier.Error("Failed to load wishlist")
		return err
	}

	if len(args) == 0 {
		printWishlist(a.out, store.Wishlist())
		return nil
	}
	if args[0] != "toggle" || len(args) != 2 {
		return fmt.Errorf("usage: storefront wishlist [toggle CAR_ID]")
	}

	carID := args[1]
	if _, ok := store.Car(carID); !ok {
		return fmt.Errorf("no car with id %q", carID)
	}

	wl := wishlist.New(store, a.client, a.notifier, a.logger)
	on, err := wl.Toggle(ctx, carID)
	if err != nil {
		return err
	}
	a.logger.Debug("wishlist toggled", zap.String("car_id", carID), zap.Bool("wishlisted", on))
	return nil
}

func runBook(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("book")
	carID := fs.String("car", "", "id of the car to book")
	date := fs.String("date", "", "pickup date (YYYY-MM-DD)")
	clock := fs.String("time", booking.DefaultPickupTime, "pickup time (HH:MM)")
	location := fs.String("location", "", "pickup location")
	contact := fs.String("contact", "", "contact email")
	hours := fs.Int("hours", pricing.MinHours, fmt.Sprintf("rental hours (%d-%d)", pricing.MinHours, pricing.MaxHours))
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !pricing.ValidHours(*hours) {
		return fmt.Errorf("hours must be between %d and %d", pricing.MinHours, pricing.MaxHours)
	}

	store := catalog.NewStore(a.client, a.logger)
	if err := store.Load(ctx); err != nil {
		a.notifier.Error("Failed to load cars")
		return err
	}
	car, ok := store.Car(*carID)
	if !ok {
		return fmt.Errorf("no car with id %q", *carID)
	}

	form := booking.NewForm(time.Now())
	form.PickupDate = time.Time{}
	if *date != "" {
		d, err := time.ParseInLocation("2006-01-02", *date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", *date, err)
		}
		form.PickupDate = d
	}
	form.PickupTime = *clock
	form.PickupLocation = *location
	form.ContactInfo = *contact
	form.Hours = *hours

	flow := booking.NewFlow(car, a.cfg.MockUserID, a.client,
		booking.WithCloseDelay(a.cfg.BookingCloseDelay),
		booking.WithNotifier(a.notifier),
		booking.WithLogger(a.logger))

	fmt.Fprintf(a.out, "%s %s, %d hour(s) at %s = %s\n",
		car.Brand, car.Name, form.Hours, money(car.PricePerDay), money(flow.Price(form.Hours)))

	b, err := flow.Submit(ctx, form)
	if err != nil {
		if errors.Is(err, booking.ErrIncompleteForm) {
			return fmt.Errorf("--date, --time, --location and --contact are required")
		}
		return err
	}
	fmt.Fprintf(a.out, "Booking %s %s\n", b.ShortID(), b.StatusOrDefault())

	select {
	case <-flow.Done():
	case <-ctx.Done():
		flow.Close()
	}
	return nil
}

func runBookings(ctx context.Context, a *app, args []string) error {
	bookings, err := a.client.ListBookings(ctx)
	if err != nil {
		a.notifier.Error(api.MessageOf(err))
		return err
	}
	printBookings(a.out, bookings)
	return nil
}
