package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BookmarkRequest struct {
	URL  string `json:"url" binding:"required"`
	Body string `json:"body"`
}

func (h *Handler) CreateBookmark(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookmark, err := h.bookmarkService.Create(userID, req.URL, req.Body)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookmark)
}

func (h *Handler) ListBookmarks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "5"))

	items, meta, err := h.bookmarkService.List(userID, page, perPage)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items, "meta": meta})
}

func (h *Handler) GetBookmark(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bookmark not found"})
		return
	}

	bookmark, err := h.bookmarkService.Get(userID, uint(id))
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookmark)
}

func (h *Handler) UpdateBookmark(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bookmark not found"})
		return
	}

	var req BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookmark, err := h.bookmarkService.Update(userID, uint(id), req.URL, req.Body)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookmark)
}

func (h *Handler) DeleteBookmark(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bookmark not found"})
		return
	}

	if err := h.bookmarkService.Delete(userID, uint(id)); err != nil {
		h.serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) BookmarkStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := h.bookmarkService.Stats(userID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (h *Handler) BookmarkQR(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bookmark not found"})
		return
	}

	bookmark, err := h.bookmarkService.Get(userID, uint(id))
	if err != nil {
		h.serviceError(c, err)
		return
	}

	shortLink := "https://" + c.Request.Host + "/" + bookmark.ShortURL
	png, err := h.qrService.GeneratePNG(shortLink, 256)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
