package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"linkmark/internal/models"
	"linkmark/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	defaultPerPage = 5
	cacheTTL       = 10 * time.Minute
)

type PageMeta struct {
	Page       int   `json:"page"`
	Pages      int   `json:"pages"`
	TotalCount int64 `json:"total_count"`
	PrevPage   *int  `json:"prev_page"`
	NextPage   *int  `json:"next_page"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

type BookmarkStats struct {
	ID       uint   `json:"id"`
	URL      string `json:"url"`
	ShortURL string `json:"short_url"`
	Visits   int    `json:"visits"`
}

// BookmarkService owns bookmark rows: CRUD scoped to the owning user, short
// code allocation at creation, and the public redirect resolution. rdb is an
// optional read-through cache for the redirect path and may be nil.
type BookmarkService struct {
	db            *gorm.DB
	rdb           *redis.Client
	logger        *slog.Logger
	validate      *validator.Validate
	codeGenerator func(int) string
	codeLength    int
	maxRetries    int
}

func NewBookmarkService(db *gorm.DB, rdb *redis.Client, logger *slog.Logger, codeLength, maxRetries int) *BookmarkService {
	return &BookmarkService{
		db:            db,
		rdb:           rdb,
		logger:        logger,
		validate:      validator.New(),
		codeGenerator: utils.GenerateShortCode,
		codeLength:    codeLength,
		maxRetries:    maxRetries,
	}
}

// Create persists a new bookmark with a freshly allocated short code. Each
// attempt runs in its own transaction: a constraint violation aborts the
// transaction, so short-code races are resolved by re-running the whole
// attempt with a new draw rather than retrying inside the aborted one.
func (s *BookmarkService) Create(userID uint, rawURL, body string) (*models.Bookmark, error) {
	if err := s.validate.Var(rawURL, "required,url"); err != nil {
		return nil, ErrInvalidURL
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		bookmark := models.Bookmark{
			UserID: userID,
			URL:    rawURL,
			Body:   body,
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.Bookmark{}).Where("url = ?", rawURL).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateURL
			}

			code, err := s.allocateCode(tx)
			if err != nil {
				return err
			}
			bookmark.ShortURL = code

			return tx.Create(&bookmark).Error
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The unique constraint fired under a race. A URL duplicate is a
			// conflict; a short-code duplicate gets a fresh draw.
			var count int64
			if err := s.db.Model(&models.Bookmark{}).Where("url = ?", rawURL).Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrDuplicateURL
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		return &bookmark, nil
	}

	s.logger.Error("short code allocation exhausted retries", "max_retries", s.maxRetries)
	return nil, ErrCodeSpaceExhausted
}

// List returns the caller's bookmarks newest-first with pagination metadata.
func (s *BookmarkService) List(userID uint, page, perPage int) ([]models.Bookmark, PageMeta, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}

	var total int64
	if err := s.db.Model(&models.Bookmark{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, PageMeta{}, err
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))

	items := []models.Bookmark{}
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&items).Error
	if err != nil {
		return nil, PageMeta{}, err
	}

	meta := PageMeta{
		Page:       page,
		Pages:      pages,
		TotalCount: total,
		HasNext:    page < pages,
		HasPrev:    page > 1,
	}
	if meta.HasPrev {
		prev := page - 1
		meta.PrevPage = &prev
	}
	if meta.HasNext {
		next := page + 1
		meta.NextPage = &next
	}

	return items, meta, nil
}

// Get fetches a single bookmark. Rows owned by other users are reported as
// not found, never as forbidden.
func (s *BookmarkService) Get(userID, id uint) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	if err := s.db.Where("user_id = ? AND id = ?", userID, id).First(&bookmark).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &bookmark, nil
}

func (s *BookmarkService) Update(userID, id uint, rawURL, body string) (*models.Bookmark, error) {
	if err := s.validate.Var(rawURL, "required,url"); err != nil {
		return nil, ErrInvalidURL
	}

	var bookmark models.Bookmark
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND id = ?", userID, id).First(&bookmark).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		bookmark.URL = rawURL
		bookmark.Body = body
		return tx.Save(&bookmark).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateURL
	}
	if err != nil {
		return nil, err
	}

	s.invalidateCache(bookmark.ShortURL)
	return &bookmark, nil
}

func (s *BookmarkService) Delete(userID, id uint) error {
	var bookmark models.Bookmark
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND id = ?", userID, id).First(&bookmark).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(&bookmark).Error
	})
	if err != nil {
		return err
	}

	s.invalidateCache(bookmark.ShortURL)
	return nil
}

// Stats lists visit counts for every bookmark owned by the caller.
func (s *BookmarkService) Stats(userID uint) ([]BookmarkStats, error) {
	stats := []BookmarkStats{}
	err := s.db.Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Select("id, url, short_url, visits").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Resolve maps a short code to its bookmark across all owners and increments
// the visit counter. The row lookup may be served from cache, but the
// increment always hits the database as a single atomic update so concurrent
// redirects are not lost.
func (s *BookmarkService) Resolve(ctx context.Context, shortCode string) (*models.Bookmark, error) {
	var bookmark models.Bookmark

	cacheHit := false
	if s.rdb != nil {
		val, err := s.rdb.Get(ctx, cacheKey(shortCode)).Result()
		if err == nil {
			if err := json.Unmarshal([]byte(val), &bookmark); err == nil {
				cacheHit = true
			}
		}
	}

	if !cacheHit {
		if err := s.db.Where("short_url = ?", shortCode).First(&bookmark).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if s.rdb != nil {
			if data, err := json.Marshal(bookmark); err == nil {
				s.rdb.Set(ctx, cacheKey(shortCode), data, cacheTTL)
			}
		}
	}

	res := s.db.Model(&models.Bookmark{}).
		Where("short_url = ?", shortCode).
		UpdateColumn("visits", gorm.Expr("visits + ?", 1))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Row vanished between lookup and increment (deleted, or stale cache).
		s.invalidateCache(shortCode)
		return nil, ErrNotFound
	}

	bookmark.Visits++
	return &bookmark, nil
}

func cacheKey(shortCode string) string {
	return "bookmark:" + shortCode
}

func (s *BookmarkService) invalidateCache(shortCode string) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(context.Background(), cacheKey(shortCode))
}
