package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pixelfeed/service/internal/config"
	"github.com/pixelfeed/service/internal/user"
)

// memStore is an in-memory user.Store for exercising the auth flows.
type memStore struct {
	byEmail map[string]*user.User
}

func newMemStore() *memStore {
	return &memStore{byEmail: map[string]*user.User{}}
}

func (s *memStore) Create(_ context.Context, email, passwordHash string) (*user.User, error) {
	if _, ok := s.byEmail[email]; ok {
		return nil, user.ErrAlreadyExists
	}
	u := &user.User{ID: "id-" + email, Email: email, PasswordHash: passwordHash}
	s.byEmail[email] = u
	return u, nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *memStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (s *memStore) UpdateEmail(_ context.Context, id, email string) (*user.User, error) {
	return nil, user.ErrNotFound
}

func newTestService(store user.Store) *Service {
	return NewService(user.NewService(store), &config.Config{JWTSecret: "test-secret"})
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	return parsed.Claims.(jwt.MapClaims)
}

func TestRegister(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	token, u, err := svc.Register(context.Background(), "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "hunter2hunter2", u.PasswordHash, "password stored in plaintext")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2hunter2")))

	claims := parseClaims(t, token)
	assert.Equal(t, u.ID, claims["sub"])
	assert.Equal(t, "ada@example.com", claims["email"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(newMemStore())

	_, _, err := svc.Register(context.Background(), "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "ada@example.com", "other-password")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := newTestService(newMemStore())

	_, registered, err := svc.Register(context.Background(), "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	token, u, err := svc.Login(context.Background(), "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.Equal(t, registered.ID, parseClaims(t, token)["sub"])
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newTestService(newMemStore())

	_, _, err := svc.Register(context.Background(), "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
