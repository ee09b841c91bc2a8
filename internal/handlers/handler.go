package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"linkmark/internal/config"
	"linkmark/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	cfg             config.Config
	logger          *slog.Logger
	authService     *services.AuthService
	tokenService    *services.TokenService
	bookmarkService *services.BookmarkService
	visitService    *services.VisitService
	qrService       *services.QRService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	authService *services.AuthService,
	tokenService *services.TokenService,
	bookmarkService *services.BookmarkService,
	visitService *services.VisitService,
	qrService *services.QRService,
) *Handler {
	return &Handler{
		cfg:             cfg,
		logger:          logger,
		authService:     authService,
		tokenService:    tokenService,
		bookmarkService: bookmarkService,
		visitService:    visitService,
		qrService:       qrService,
	}
}

// serviceError maps service-layer sentinel errors onto the HTTP error
// envelope. Unknown errors become a generic 500 without internal detail.
func (h *Handler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrInvalidUsername),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrDuplicateURL):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAuthenticationFailed),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrExpiredToken),
		errors.Is(err, services.ErrWrongTokenType):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("internal error", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
