package handlers

import (
	"net/http"

	"linkmark/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.RequestLogger())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.LoginUser)
		auth.GET("/whoami", h.RequireAuth(services.AccessToken), h.Whoami)
		auth.GET("/token/refresh", h.RefreshToken)
	}

	bookmarks := r.Group("/api/v1/bookmarks")
	bookmarks.Use(h.RequireAuth(services.AccessToken))
	{
		bookmarks.GET("", h.ListBookmarks)
		bookmarks.POST("", h.CreateBookmark)
		bookmarks.GET("/stats", h.BookmarkStats)
		bookmarks.GET("/:id", h.GetBookmark)
		bookmarks.PUT("/:id", h.UpdateBookmark)
		bookmarks.PATCH("/:id", h.UpdateBookmark)
		bookmarks.DELETE("/:id", h.DeleteBookmark)
		bookmarks.GET("/:id/qr", h.BookmarkQR)
	}

	// Public redirect
	r.GET("/:short_code", h.Redirect)

	return r
}
