package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"linkmark/internal/config"
	"linkmark/internal/models"
	"linkmark/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.AutoMigrate(&models.User{}, &models.Bookmark{}, &models.Visit{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		JWTSecret:           "test-secret-12345678901234567890123456789012",
		ShortCodeLength:     3,
		ShortCodeMaxRetries: 16,
	}

	geoIP := services.NewGeoIPService("", logger)
	visit := services.NewVisitService(db, logger, geoIP)
	auth := services.NewAuthService(db, logger)
	token := services.NewTokenService(cfg.JWTSecret, 15*time.Minute, 24*time.Hour)
	bookmarks := services.NewBookmarkService(db, nil, logger, cfg.ShortCodeLength, cfg.ShortCodeMaxRetries)
	qr := services.NewQRService()

	h := NewHandler(cfg, logger, auth, token, bookmarks, visit, qr)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter()
}

// registerAndLogin creates a user through the service layer and returns its id
// with a valid access token.
func registerAndLogin(t *testing.T, h *Handler, username string) (uint, string) {
	t.Helper()

	user, err := h.authService.Register(username, username+"@example.com", "password123")
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	token, err := h.tokenService.IssueAccessToken(user.ID)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return user.ID, token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		buf = bytes.NewBuffer(jsonBody)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
