package handlers

import (
	"net/http"

	"linkmark/internal/services"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User Created",
		"user": gin.H{
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func (h *Handler) LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Email takes precedence when both are supplied.
	var identifier services.Identifier
	switch {
	case req.Email != "":
		identifier = services.ByEmail(req.Email)
	case req.Username != "":
		identifier = services.ByUsername(req.Username)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "email or username is required"})
		return
	}

	user, err := h.authService.Authenticate(identifier, req.Password)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	access, err := h.tokenService.IssueAccessToken(user.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	refresh, err := h.tokenService.IssueRefreshToken(user.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"access_token":  access,
			"refresh_token": refresh,
			"username":      user.Username,
			"email":         user.Email,
		},
	})
}

func (h *Handler) Whoami(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.authService.UserByID(userID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"email":    user.Email,
	})
}

func (h *Handler) RefreshToken(c *gin.Context) {
	refresh, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
		return
	}

	access, err := h.tokenService.Refresh(refresh)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}
