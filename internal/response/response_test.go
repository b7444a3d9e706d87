package response

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCarriesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), chiMiddleware.RequestIDKey, "host/abc-000001")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	NotFound(rec, req, "post not found")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "post not found", env.Error)
	assert.Equal(t, "host/abc-000001", env.RequestID)
}

func TestSuccessOmitsRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]bool{"deleted": true})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "requestId")
}
