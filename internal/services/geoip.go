package services

import (
	"log/slog"
	"net"
	"sync"

	"github.com/oschwald/geoip2-golang"
)

// GeoIPService resolves an IP address to a country name from a local GeoLite2
// database. Lookups degrade to "Unknown" when no database is configured.
type GeoIPService struct {
	logger    *slog.Logger
	geoReader *geoip2.Reader
	geoLock   sync.RWMutex
}

func NewGeoIPService(dbPath string, logger *slog.Logger) *GeoIPService {
	s := &GeoIPService{logger: logger}

	if dbPath == "" {
		logger.Warn("GeoIP: no database path configured. Lookups will be disabled.")
		return s
	}

	reader, err := geoip2.Open(dbPath)
	if err != nil {
		logger.Error("GeoIP: Failed to open database", "path", dbPath, "error", err)
		return s
	}

	s.geoReader = reader
	meta := reader.Metadata()
	logger.Info("GeoIP: Loaded database", "epoch", meta.BuildEpoch)
	return s
}

func (s *GeoIPService) Country(ipAddress string) string {
	s.geoLock.RLock()
	defer s.geoLock.RUnlock()

	if s.geoReader == nil {
		return "Unknown"
	}

	ip := net.ParseIP(ipAddress)
	if ip == nil {
		return "Unknown"
	}

	record, err := s.geoReader.Country(ip)
	if err != nil || record.Country.Names["en"] == "" {
		return "Unknown"
	}
	return record.Country.Names["en"]
}

func (s *GeoIPService) Close() {
	s.geoLock.Lock()
	defer s.geoLock.Unlock()

	if s.geoReader != nil {
		s.geoReader.Close()
		s.geoReader = nil
	}
}
