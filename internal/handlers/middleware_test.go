package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireAuth(t *testing.T) {
	h, _ := setupTestHandler(t)
	r := setupTestRouter(h)

	t.Run("Missing Header", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/auth/whoami", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/auth/whoami", nil)
		req.Header.Set("Authorization", "NotBearer abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/auth/whoami", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid Token", func(t *testing.T) {
		_, access := registerAndLogin(t, h, "alice")
		w := doJSON(r, "GET", "/api/v1/auth/whoami", access, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequestLogger(t *testing.T) {
	h, _ := setupTestHandler(t)
	r := setupTestRouter(h)

	w := doJSON(r, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
