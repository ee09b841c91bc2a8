package services

import (
	"linkmark/internal/models"

	"gorm.io/gorm"
)

// allocateCode draws random codes from the 62-symbol alphabet until one is
// unused, bounded by maxRetries. The existence check is advisory: the unique
// constraint on bookmarks.short_url remains the authority, and Create re-runs
// the attempt when the constraint fires under a race.
//
// Termination is probabilistic. With the default 3-character code there are
// 62^3 = 238,328 possible values, so retries climb steeply as occupancy
// approaches the keyspace; lengthening SHORT_CODE_LENGTH is the way out.
func (s *BookmarkService) allocateCode(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		code := s.codeGenerator(s.codeLength)

		var count int64
		if err := tx.Model(&models.Bookmark{}).Where("short_url = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}

	return "", ErrCodeSpaceExhausted
}
