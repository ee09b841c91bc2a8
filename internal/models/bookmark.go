package models

import (
	"time"
)

type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	URL       string    `gorm:"uniqueIndex;not null;size:2048" json:"url"`
	Body      string    `gorm:"type:text" json:"body"`
	ShortURL  string    `gorm:"uniqueIndex;not null;size:12" json:"short_url"`
	Visits    int       `gorm:"default:0" json:"visits"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	VisitLog []Visit `gorm:"foreignKey:BookmarkID;constraint:OnDelete:CASCADE" json:"-"`
}
