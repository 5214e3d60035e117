package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"car-rental/catalog"
	"car-rental/models"
)

func money(v float64) string {
	return "₹" + strconv.FormatFloat(v, 'f', -1, 64)
}

func ratingOptions() string {
	opts := make([]string, len(catalog.RatingSteps))
	for i, r := range catalog.RatingSteps {
		opts[i] = strconv.FormatFloat(r, 'f', -1, 64)
	}
	return strings.Join(opts, ", ")
}

func printPage(w io.Writer, p catalog.Page, wishlisted func(string) bool) {
	if p.Empty() {
		fmt.Fprintln(w, "No cars match your filters.")
		return
	}
	if len(p.Cars) == 0 {
		fmt.Fprintf(w, "Page %d is past the end (%d pages).\n", p.Number, p.Nav.Total)
		return
	}

	fmt.Fprintf(w, "Showing %d-%d of %d vehicles\n\n", p.From, p.To, p.Total)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tCAR\tTYPE\tFUEL\tTRANSMISSION\tRATING\tPRICE/HR\tIMAGE")
	for _, car := range p.Cars {
		mark := " "
		if wishlisted(car.ID) {
			mark = "♥"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\t%s\t%.1f\t%s\t%s\n",
			mark, car.ID, car.Brand, car.Name, car.Type, car.FuelType, car.Transmission,
			car.Rating, money(car.PricePerDay), catalog.BrandImage(car.Brand))
	}
	tw.Flush()

	printNavigation(w, p.Nav)
}

func printNavigation(w io.Writer, nav catalog.Navigation) {
	if !nav.Visible() {
		return
	}

	var b strings.Builder
	control := func(label string, page int, disabled bool) {
		if disabled {
			fmt.Fprintf(&b, " (%s)", label)
			return
		}
		fmt.Fprintf(&b, " %s:%d", label, page)
	}

	control("first", 1, nav.FirstDisabled)
	control("prev", nav.Previous(), nav.PreviousDisabled)
	for _, n := range nav.Pages {
		if n == nav.Current {
			fmt.Fprintf(&b, " [%d]", n)
		} else {
			fmt.Fprintf(&b, " %d", n)
		}
	}
	control("next", nav.Next(), nav.NextDisabled)
	control("last", nav.Total, nav.LastDisabled)

	fmt.Fprintf(w, "\nPages:%s\n", b.String())
}

func printWishlist(w io.Writer, entries []models.WishlistEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Your wishlist is empty.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CAR ID\tCAR\tPRICE/HR")
	for _, e := range entries {
		car, ok := e.CarID.Car()
		if !ok {
			fmt.Fprintf(tw, "%s\t(unavailable)\t-\n", e.CarID.ID())
			continue
		}
		fmt.Fprintf(tw, "%s\t%s %s\t%s\n", car.ID, car.Brand, car.Name, money(car.PricePerDay))
	}
	tw.Flush()
}

func printBookings(w io.Writer, bookings []models.Booking) {
	if len(bookings) == 0 {
		fmt.Fprintln(w, "You have no bookings yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BOOKING\tCAR\tPICKUP\tLOCATION\tHOURS\tTOTAL\tSTATUS\tBOOKED ON")
	for _, b := range bookings {
		name := b.CarID.ID()
		if car, ok := b.CarID.Car(); ok {
			name = car.Brand + " " + car.Name
		}
		fmt.Fprintf(tw, "#%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			b.ShortID(), name,
			b.PickupDateTime.Local().Format("02 Jan 2006 15:04"),
			b.PickupLocation, b.Hours, money(b.TotalPrice), b.StatusOrDefault(),
			formatDate(b.CreatedAt))
	}
	tw.Flush()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02 Jan 2006")
}
