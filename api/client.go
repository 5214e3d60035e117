// Package api is the storefront's client for the rental REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"car-rental/models"
)

// Fallback messages used when an error response carries no message.
const (
	msgLoadCars       = "Failed to load cars"
	msgLoadWishlist   = "Failed to load wishlist"
	msgAddWishlist    = "Failed to add to wishlist"
	msgRemoveWishlist = "Failed to remove from wishlist"
	msgCreateBooking  = "Booking failed"
	msgListBookings   = "Failed to fetch bookings"
)

// Client calls the rental API. Requests are never retried.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for the API rooted at baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListCars returns the full catalog.
func (c *Client) ListCars(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := c.do(ctx, "list cars", http.MethodGet, "/cars", nil, &cars, msgLoadCars); err != nil {
		return nil, err
	}
	return cars, nil
}

// ListWishlist returns the wishlist entries.
func (c *Client) ListWishlist(ctx context.Context) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	if err := c.do(ctx, "list wishlist", http.MethodGet, "/wishlist", nil, &entries, msgLoadWishlist); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddWishlist saves carID to the wishlist and returns the created entry.
func (c *Client) AddWishlist(ctx context.Context, carID string) (*models.WishlistEntry, error) {
	var entry models.WishlistEntry
	req := models.WishlistRequest{CarID: carID}
	if err := c.do(ctx, "add wishlist", http.MethodPost, "/wishlist", req, &entry, msgAddWishlist); err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveWishlist drops carID from the wishlist.
func (c *Client) RemoveWishlist(ctx context.Context, carID string) error {
	return c.do(ctx, "remove wishlist", http.MethodDelete, "/wishlist/"+url.PathEscape(carID), nil, nil, msgRemoveWishlist)
}

// CreateBooking submits a booking and returns the stored booking.
func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, "create booking", http.MethodPost, "/bookings", req, &booking, msgCreateBooking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookings returns the booking history.
func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.do(ctx, "list bookings", http.MethodGet, "/bookings", nil, &bookings, msgListBookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &Error{Op: op, Message: fallback, Cause: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Op: op, Message: fallback, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", zap.String("op", op), zap.String("method", method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api transport error", zap.String("op", op), zap.Error(err))
		return &Error{Op: op, Message: fallback, Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Message: fallback, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		var errBody models.ErrorResponse
		if json.Unmarshal(data, &errBody) == nil && errBody.Message != "" {
			msg = errBody.Message
		}
		c.logger.Warn("api error response",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return &Error{Op: op, Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Message: fallback, Cause: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
