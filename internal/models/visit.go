package models

import (
	"time"
)

// Visit is the per-redirect observability record written by the async worker.
// The authoritative visit counter lives on Bookmark.Visits.
type Visit struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookmarkID uint      `gorm:"not null;index" json:"bookmark_id"`
	Timestamp  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
	IPAddress  string    `gorm:"size:45" json:"ip_address,omitempty"`
	Country    string    `gorm:"size:100;default:'Unknown'" json:"country"`
	Browser    string    `gorm:"size:100" json:"browser"`
	OS         string    `gorm:"size:100" json:"os"`
	DeviceType string    `gorm:"size:50" json:"device_type"`
	Platform   string    `gorm:"size:255" json:"platform"` // Raw User-Agent
	Referrer   string    `gorm:"size:255;default:'Direct'" json:"referrer"`
}
