package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelfeed/service/internal/middleware"
	"github.com/pixelfeed/service/internal/response"
)

// fakeStore is an in-memory Store keyed by user ID.
type fakeStore struct {
	mu           sync.Mutex
	users        map[string]*User // id -> user
	updateCalled int
}

func newFakeStore(users ...*User) *fakeStore {
	s := &fakeStore{users: map[string]*User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeStore) Create(_ context.Context, email, passwordHash string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return nil, ErrAlreadyExists
		}
	}
	u := &User{ID: "user-" + email, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (s *fakeStore) GetByEmail(_ context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeStore) UpdateEmail(_ context.Context, id, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalled++
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	for _, other := range s.users {
		if other.ID != id && other.Email == email {
			return nil, ErrAlreadyExists
		}
	}
	u.Email = email
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func newTestRouter(store Store) *chi.Mux {
	h := NewHandler(NewService(store))
	r := chi.NewRouter()
	r.Get("/users/me", h.GetMe)
	r.Patch("/users/me", h.UpdateEmail)
	return r
}

func asUser(r *http.Request, userID, email string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.UserEmailKey, email)
	return r.WithContext(ctx)
}

func decodeUser(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)
	return env.Data.(map[string]interface{})
}

func TestGetMe(t *testing.T) {
	store := newFakeStore(&User{ID: "u1", Email: "ada@example.com"})
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(req, "u1", "ada@example.com"))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeUser(t, rec)
	assert.Equal(t, "ada@example.com", data["email"])
	_, hashExposed := data["passwordHash"]
	assert.False(t, hashExposed, "password hash leaked in profile response")
}

func TestGetMeUnknownUser(t *testing.T) {
	router := newTestRouter(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(req, "ghost", "ghost@example.com"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMeUnauthenticated(t *testing.T) {
	router := newTestRouter(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func patchEmail(router *chi.Mux, userID, tokenEmail, newEmail string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"email": newEmail})
	req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(req, userID, tokenEmail))
	return rec
}

func TestUpdateEmail(t *testing.T) {
	store := newFakeStore(&User{ID: "u1", Email: "ada@example.com"})
	router := newTestRouter(store)

	rec := patchEmail(router, "u1", "ada@example.com", "lovelace@example.com")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeUser(t, rec)
	assert.Equal(t, "lovelace@example.com", data["email"])
	assert.Equal(t, 1, store.updateCalled)
}

func TestUpdateEmailUnchangedSkipsWrite(t *testing.T) {
	store := newFakeStore(&User{ID: "u1", Email: "ada@example.com"})
	router := newTestRouter(store)

	rec := patchEmail(router, "u1", "ada@example.com", "ada@example.com")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeUser(t, rec)
	assert.Equal(t, "ada@example.com", data["email"])
	assert.Zero(t, store.updateCalled, "no-op change should not hit the store")
}

func TestUpdateEmailTaken(t *testing.T) {
	store := newFakeStore(
		&User{ID: "u1", Email: "ada@example.com"},
		&User{ID: "u2", Email: "grace@example.com"},
	)
	router := newTestRouter(store)

	rec := patchEmail(router, "u1", "ada@example.com", "grace@example.com")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateEmailInvalid(t *testing.T) {
	store := newFakeStore(&User{ID: "u1", Email: "ada@example.com"})
	router := newTestRouter(store)

	rec := patchEmail(router, "u1", "ada@example.com", "not-an-email")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, store.updateCalled)
}
