// Command storefront is the terminal front end of the car rental store.
//
//	storefront login --email E --password P
//	storefront demo-credentials
//	storefront browse [--type T] [--fuel F] [--transmission M] [--min-rating R] [--max-price P] [--search S] [--page N] [--clear]
//	storefront wishlist [toggle CAR_ID]
//	storefront book --car CAR_ID --date YYYY-MM-DD [--time HH:MM] --location L --contact EMAIL [--hours H]
//	storefront bookings
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"car-rental/api"
	"car-rental/auth"
	"car-rental/config"
	"car-rental/logging"
	"car-rental/notify"
)

type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	client   *api.Client
	session  *auth.Session
	notifier notify.Notifier
	out      io.Writer
}

type command struct {
	name    string
	summary string
	// protected commands need a logged-in session
	protected bool
	run       func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{name: "login", summary: "log in with the demo account", run: runLogin},
	{name: "demo-credentials", summary: "print the demo account credentials", run: runDemoCredentials},
	{name: "browse", summary: "list cars with filters and paging", protected: true, run: runBrowse},
	{name: "wishlist", summary: "show the wishlist or toggle a car", protected: true, run: runWishlist},
	{name: "book", summary: "book a car for 1-12 hours", protected: true, run: runBook},
	{name: "bookings", summary: "show booking history", protected: true, run: runBookings},
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(stdout)
		return nil
	}

	cmd, ok := lookup(args[0])
	if !ok {
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}

	cfg := config.Load()
	logger, err := logging.Console(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	session, err := auth.NewSession(auth.NewFileStorage(cfg.SessionFile), logger)
	if err != nil {
		return err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		client:   api.New(cfg.APIBaseURL, api.WithTimeout(cfg.HTTPTimeout), api.WithLogger(logger)),
		session:  session,
		notifier: notify.NewWriter(stderr),
		out:      stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cmd.protected {
		return cmd.run(ctx, a, args[1:])
	}

	var runErr error
	err = session.RequireAuthThen("/"+cmd.name, func(string) {
		runErr = cmd.run(ctx, a, args[1:])
	})
	if errors.Is(err, auth.ErrLoginRequired) {
		a.notifier.Error(err.Error())
		return fmt.Errorf("run `storefront login` first")
	}
	if err != nil {
		return err
	}
	return runErr
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: storefront <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-18s %s\n", c.name, c.summary)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SortFlags = false
	return fs
}
