package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIKeyAuthMiddleware(t *testing.T) {
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	run := func(serverKey, authHeader string) *httptest.ResponseRecorder {
		nextCalled = false
		req := httptest.NewRequest(http.MethodGet, "/api/mcp", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		APIKeyAuthMiddleware(serverKey)(next).ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid_token_passes", func(t *testing.T) {
		rec := run("secret", "Bearer secret")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, nextCalled)
	})

	t.Run("missing_header_rejected", func(t *testing.T) {
		rec := run("secret", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, nextCalled)
	})

	t.Run("wrong_token_rejected", func(t *testing.T) {
		rec := run("secret", "Bearer nope")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, nextCalled)
	})

	t.Run("non_bearer_scheme_rejected", func(t *testing.T) {
		rec := run("secret", "Basic secret")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, nextCalled)
	})

	t.Run("unconfigured_server_key_rejects_everything", func(t *testing.T) {
		rec := run("", "Bearer anything")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, nextCalled)
	})
}
