package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthHandlers_Register(t *testing.T) {
	h, _ := setupTestHandler(t)
	r := setupTestRouter(h)

	t.Run("Success", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/v1/auth/register", "", map[string]string{
			"username": "testuser",
			"email":    "test@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "User Created", resp["message"])
		user := resp["user"].(map[string]interface{})
		assert.Equal(t, "testuser", user["username"])
		assert.Equal(t, "test@example.com", user["email"])
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/v1/auth/register", "", map[string]string{
			"username": "testuser",
			"email":    "other@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/v1/auth/register", "", map[string]string{
			"username": "testuser2",
			"email":    "test@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Weak Password", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/v1/auth/register", "", map[string]string{
			"username": "short",
			"email":    "short@example.com",
			"password": "12345",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid Username", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/v1/auth/register", "", map[string]string{
			"username": "has space",
			"email":    "space@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid Email", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/v1/auth/register", "", map[string]string{
			"username": "bademail",
			"email":    "not-an-email",
			"password": "password123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/v1/auth/register", "", map[string]string{
			"username": "nobody",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandlers_Login(t *testing.T) {
	h, _ := setupTestHandler(t)
	r := setupTestRouter(h)

	doJSON(r, "POST", "/api/v1/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "secret1",
	})

	t.Run("By Email", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/v1/auth/login", "", map[string]string{
			"email":    "alice@x.com",
			"password": "secret1",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		user := resp["user"].(map[string]interface{})
		assert.NotEmpty(t, user["access_token"])
		assert.NotEmpty(t, user["refresh_token"])
		assert.Equal(t, "alice", user["username"])
		assert.Equal(t, "alice@x.com", user["email"])
	})

	t.Run("By Username", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/v1/auth/login", "", map[string]string{
			"username": "alice",
			"password": "secret1",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/v1/auth/login", "", map[string]string{
			"email":    "alice@x.com",
			"password": "wrongpass",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unknown User", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/v1/auth/login", "", map[string]string{
			"email":    "nobody@x.com",
			"password": "secret1",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("No Identifier", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/v1/auth/login", "", map[string]string{
			"password": "secret1",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandlers_Whoami(t *testing.T) {
	h, _ := setupTestHandler(t)
	r := setupTestRouter(h)

	userID, access := registerAndLogin(t, h, "carol")

	t.Run("Success", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/auth/whoami", access, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "carol", resp["username"])
		assert.Equal(t, "carol@example.com", resp["email"])
	})

	t.Run("No Token", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/auth/whoami", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Refresh Token Rejected", func(t *testing.T) {
		refresh, _ := h.tokenService.IssueRefreshToken(userID)
		w := doJSON(r, "GET", "/api/v1/auth/whoami", refresh, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unknown Subject", func(t *testing.T) {
		token, _ := h.tokenService.IssueAccessToken(9999)
		w := doJSON(r, "GET", "/api/v1/auth/whoami", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Database Fault", func(t *testing.T) {
		h2, db2 := setupTestHandler(t)
		r2 := setupTestRouter(h2)
		_, access2 := registerAndLogin(t, h2, "erin")

		sqlDB, err := db2.DB()
		assert.NoError(t, err)
		sqlDB.Close()

		w := doJSON(r2, "GET", "/api/v1/auth/whoami", access2, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthHandlers_TokenRefresh(t *testing.T) {
	h, _ := setupTestHandler(t)
	r := setupTestRouter(h)

	userID, access := registerAndLogin(t, h, "dave")
	refresh, _ := h.tokenService.IssueRefreshToken(userID)

	t.Run("Success", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/auth/token/refresh", refresh, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.NotEmpty(t, resp["access"])
	})

	t.Run("Access Token Rejected", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/auth/token/refresh", access, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("No Token", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/auth/token/refresh", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/auth/token/refresh", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("New Access Token Is Usable", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/v1/auth/token/refresh", refresh, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		json.Unmarshal(w.Body.Bytes(), &resp)

		w = doJSON(r, "GET", "/api/v1/auth/whoami", resp["access"], nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
