package services

import (
	"context"
	"log/slog"

	"linkmark/internal/models"

	"github.com/mssola/user_agent"
	"gorm.io/gorm"
)

// VisitService records per-redirect visit logs asynchronously. It is pure
// observability: the bookmark's visit counter is incremented synchronously by
// the resolver and never depends on this worker.
type VisitService struct {
	db           *gorm.DB
	logger       *slog.Logger
	visitChannel chan models.Visit
	geoIPService *GeoIPService
}

func NewVisitService(db *gorm.DB, logger *slog.Logger, geoIPService *GeoIPService) *VisitService {
	return &VisitService{
		db:           db,
		logger:       logger,
		visitChannel: make(chan models.Visit, 1000),
		geoIPService: geoIPService,
	}
}

func (s *VisitService) Start(ctx context.Context) {
	s.logger.Info("Visit worker starting")
	for {
		select {
		case visit := <-s.visitChannel:
			s.enrichVisit(&visit)

			if err := s.db.Create(&visit).Error; err != nil {
				s.logger.Error("Failed to record visit", "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("Visit worker stopping")
			return
		}
	}
}

func (s *VisitService) RecordAsync(visit models.Visit) {
	select {
	case s.visitChannel <- visit:
		// Sent
	default:
		s.logger.Warn("Visit channel full, dropping visit event")
	}
}

func (s *VisitService) enrichVisit(visit *models.Visit) {
	ua := user_agent.New(visit.Platform)
	browserName, browserVer := ua.Browser()
	visit.Browser = browserName + " " + browserVer
	visit.OS = ua.OS()

	if ua.Mobile() {
		visit.DeviceType = "Mobile"
	} else if ua.Bot() {
		visit.DeviceType = "Bot"
	} else {
		visit.DeviceType = "Desktop"
	}

	visit.Country = s.geoIPService.Country(visit.IPAddress)

	// Mask IP for Privacy (GDPR)
	visit.IPAddress = s.maskIP(visit.IPAddress)
}

func (s *VisitService) maskIP(ip string) string {
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == '.' {
			return ip[:i] + ".0"
		}
		if ip[i] == ':' {
			return "IPv6 (Masked)"
		}
	}
	return ip
}
