package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoginSuccessPersistsMarker(t *testing.T) {
	storage := NewMemoryStorage()
	s, err := NewSession(storage, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Unauthenticated, s.State())

	require.NoError(t, s.Login("mock_user@gmail.com", "CarRental#123"))
	assert.True(t, s.Authenticated())
	assert.Equal(t, "mock_user@gmail.com", s.Email())

	raw, ok, err := storage.Get(UserKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"email":"mock_user@gmail.com"}`, raw)
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", MockEmail, "carrental#123"},
		{"wrong email", "other@gmail.com", MockPassword},
		{"email case differs", "Mock_User@gmail.com", MockPassword},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			s, err := NewSession(storage, zap.NewNop())
			require.NoError(t, err)

			err = s.Login(tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.False(t, s.Authenticated())

			_, ok, _ := storage.Get(UserKey)
			assert.False(t, ok)
		})
	}
}

func TestRequireAuthThen(t *testing.T) {
	s, err := NewSession(NewMemoryStorage(), zap.NewNop())
	require.NoError(t, err)

	var visited []string
	navigate := func(path string) { visited = append(visited, path) }

	err = s.RequireAuthThen("/wishlist", navigate)
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.Equal(t, "Please login to continue.", err.Error())
	assert.Empty(t, visited)

	require.NoError(t, s.Login(DemoCredentials()))
	require.NoError(t, s.RequireAuthThen("/wishlist", navigate))
	assert.Equal(t, []string{"/wishlist"}, visited)
}

func TestSessionRestoredFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	first, err := NewSession(NewFileStorage(path), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, first.Login(MockEmail, MockPassword))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := NewSession(NewFileStorage(path), zap.NewNop())
	require.NoError(t, err)
	assert.True(t, second.Authenticated())
	assert.Equal(t, MockEmail, second.Email())
}

func TestUnreadableMarkerIsIgnored(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(UserKey, "not json"))

	s, err := NewSession(storage, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, s.Authenticated())
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	fs := NewFileStorage(path)

	_, ok, err := fs.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fs.Set("a", "1"))
	require.NoError(t, fs.Set("b", "2"))
	require.NoError(t, fs.Delete("a"))
	require.NoError(t, fs.Delete("a"))

	v, ok, err := NewFileStorage(path).Get("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, _, err = fs.Get("b")
	assert.Error(t, err)
}

func TestUserFacingMessages(t *testing.T) {
	assert.Equal(t, "Invalid mock credentials.", ErrInvalidCredentials.Error())
	assert.Equal(t, "Please login to continue.", ErrLoginRequired.Error())
	assert.Equal(t, "You are log in!!", MsgLoggedIn)
}
