// Package auth is the storefront's mock login. One fixed credential pair is
// accepted and a successful login is remembered in Storage under the "user"
// key. There is no logout and no expiry.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// MockEmail and MockPassword are the only accepted credentials.
	MockEmail    = "mock_user@gmail.com"
	MockPassword = "CarRental#123"

	// UserKey is the storage key holding the logged-in marker.
	UserKey = "user"

	// MsgLoggedIn is shown after a successful login.
	MsgLoggedIn = "You are log in!!"
)

var (
	ErrInvalidCredentials = errors.New("Invalid mock credentials.")
	ErrLoginRequired      = errors.New("Please login to continue.")
)

var (
	passwordHashOnce sync.Once
	passwordHash     []byte
	passwordHashErr  error
)

func mockPasswordHash() ([]byte, error) {
	passwordHashOnce.Do(func() {
		passwordHash, passwordHashErr = bcrypt.GenerateFromPassword([]byte(MockPassword), bcrypt.DefaultCost)
	})
	return passwordHash, passwordHashErr
}

// DemoCredentials returns the credential pair shown on the login screen.
func DemoCredentials() (email, password string) {
	return MockEmail, MockPassword
}

// State is the session's authentication state.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

type userMarker struct {
	Email string `json:"email"`
}

// Session tracks whether the user has logged in.
type Session struct {
	storage Storage
	logger  *zap.Logger

	mu    sync.RWMutex
	state State
	email string
}

// NewSession creates a Session, restoring a previous login from storage.
func NewSession(storage Storage, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{storage: storage, logger: logger}

	raw, ok, err := storage.Get(UserKey)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if ok {
		var marker userMarker
		if err := json.Unmarshal([]byte(raw), &marker); err != nil {
			logger.Warn("ignoring unreadable session marker", zap.Error(err))
		} else {
			s.state = Authenticated
			s.email = marker.Email
		}
	}
	return s, nil
}

// State returns the current authentication state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Authenticated reports whether the user has logged in.
func (s *Session) Authenticated() bool {
	return s.State() == Authenticated
}

// Email returns the logged-in email, empty when unauthenticated.
func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// Login checks the credentials and persists the login marker on success.
// A failed attempt leaves the session unchanged.
func (s *Session) Login(email, password string) error {
	hash, err := mockPasswordHash()
	if err != nil {
		return fmt.Errorf("hash mock password: %w", err)
	}
	passwordOK := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
	if email != MockEmail || !passwordOK {
		s.logger.Info("login rejected", zap.String("email", email))
		return ErrInvalidCredentials
	}

	raw, err := json.Marshal(userMarker{Email: email})
	if err != nil {
		return err
	}
	if err := s.storage.Set(UserKey, string(raw)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.state = Authenticated
	s.email = email
	s.mu.Unlock()

	s.logger.Info("login succeeded", zap.String("email", email))
	return nil
}

// RequireAuthThen navigates to path when the user is logged in and returns
// ErrLoginRequired without navigating otherwise.
func (s *Session) RequireAuthThen(path string, navigate func(string)) error {
	if !s.Authenticated() {
		return ErrLoginRequired
	}
	navigate(path)
	return nil
}
