package handlers

import (
	"net/http"
	"time"

	"linkmark/internal/models"

	"github.com/gin-gonic/gin"
)

// Redirect resolves a short code to its target URL. This endpoint is
// intentionally unauthenticated and the only path that mutates visit counts.
func (h *Handler) Redirect(c *gin.Context) {
	shortCode := c.Param("short_code")

	bookmark, err := h.bookmarkService.Resolve(c.Request.Context(), shortCode)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	h.visitService.RecordAsync(models.Visit{
		BookmarkID: bookmark.ID,
		Timestamp:  time.Now(),
		IPAddress:  c.ClientIP(),
		Referrer:   c.Request.Referer(),
		Platform:   c.Request.UserAgent(),
	})

	c.Redirect(http.StatusFound, bookmark.URL)
}
