package cleanup

import (
	"fmt"
	"time"

	"mls-sync/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SearchRemover deletes documents from the search index. Nil-able at
// the caller when no search backend is configured.
type SearchRemover interface {
	DeleteProperty(listingKey string) error
}

// Service prunes rows the sync no longer maintains: open houses whose
// window passed long ago, and search documents for listings that have
// stayed archived past the retention window. Canonical property rows
// and the change history are never deleted.
type Service struct {
	db     *gorm.DB
	search SearchRemover
	logger *logrus.Logger
}

// NewService creates a retention service
func NewService(db *gorm.DB, search SearchRemover, logger *logrus.Logger) *Service {
	return &Service{db: db, search: search, logger: logger}
}

// Config holds retention settings
type Config struct {
	OpenHouseRetentionDays int  // Days to keep open houses after their end time (default: 30)
	ArchivedRetentionDays  int  // Days an archived listing stays searchable (default: 90)
	MaxDeletionCount       int  // Safety limit per run
	DryRun                 bool // Only log what would be pruned
}

// DefaultConfig returns default retention settings
func DefaultConfig() Config {
	return Config{
		OpenHouseRetentionDays: 30,
		ArchivedRetentionDays:  90,
		MaxDeletionCount:       10000,
	}
}

// Result holds the outcome of one retention pass
type Result struct {
	OpenHousesDeleted int       `json:"open_houses_deleted"`
	SearchDocsRemoved int       `json:"search_docs_removed"`
	ErrorCount        int       `json:"error_count"`
	DryRun            bool      `json:"dry_run"`
	ExecutedAt        time.Time `json:"executed_at"`
}

// Run executes one retention pass
func (s *Service) Run(cfg Config) (*Result, error) {
	result := &Result{DryRun: cfg.DryRun, ExecutedAt: time.Now()}

	if err := s.pruneOpenHouses(cfg, result); err != nil {
		return result, err
	}
	if err := s.pruneSearchDocs(cfg, result); err != nil {
		return result, err
	}

	s.logger.WithFields(logrus.Fields{
		"open_houses": result.OpenHousesDeleted,
		"search_docs": result.SearchDocsRemoved,
		"errors":      result.ErrorCount,
		"dry_run":     result.DryRun,
	}).Info("Cleanup: retention pass finished")

	return result, nil
}

// pruneOpenHouses deletes open houses that ended before the retention
// cutoff. The enrichment pass only replaces rows for listings it still
// sees, so windows of delisted properties accumulate without this.
func (s *Service) pruneOpenHouses(cfg Config, result *Result) error {
	cutoff := time.Now().AddDate(0, 0, -cfg.OpenHouseRetentionDays)

	var eligible int64
	if err := s.db.Model(&models.OpenHouse{}).
		Where("end_time IS NOT NULL AND end_time < ?", cutoff).
		Count(&eligible).Error; err != nil {
		return fmt.Errorf("failed to count expired open houses: %w", err)
	}
	if eligible == 0 {
		return nil
	}
	if eligible > int64(cfg.MaxDeletionCount) {
		return fmt.Errorf("safety check failed: %d open houses exceed deletion limit of %d",
			eligible, cfg.MaxDeletionCount)
	}

	if cfg.DryRun {
		s.logger.Infof("Cleanup: [dry-run] would delete %d open houses ended before %s",
			eligible, cutoff.Format("2006-01-02"))
		result.OpenHousesDeleted = int(eligible)
		return nil
	}

	res := s.db.Where("end_time IS NOT NULL AND end_time < ?", cutoff).
		Delete(&models.OpenHouse{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete expired open houses: %w", res.Error)
	}
	result.OpenHousesDeleted = int(res.RowsAffected)
	return nil
}

// pruneSearchDocs removes listings from the search index once they have
// stayed archived past the retention window. Database rows survive, so
// the change history endpoint still serves them.
func (s *Service) pruneSearchDocs(cfg Config, result *Result) error {
	if s.search == nil {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -cfg.ArchivedRetentionDays)

	var keys []string
	err := s.db.Model(&models.Property{}).
		Where("is_archived = ? AND modification_timestamp < ?", true, cutoff).
		Limit(cfg.MaxDeletionCount).
		Pluck("listing_key", &keys).Error
	if err != nil {
		return fmt.Errorf("failed to find stale archived listings: %w", err)
	}

	for _, key := range keys {
		if cfg.DryRun {
			result.SearchDocsRemoved++
			continue
		}
		if err := s.search.DeleteProperty(key); err != nil {
			s.logger.Warnf("Cleanup: failed to remove %s from search index: %v", key, err)
			result.ErrorCount++
			continue
		}
		result.SearchDocsRemoved++
	}
	return nil
}

// Stats reports retention pressure for the admin surface
func (s *Service) Stats(cfg Config) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	openHouseCutoff := time.Now().AddDate(0, 0, -cfg.OpenHouseRetentionDays)
	var expiredOpenHouses int64
	if err := s.db.Model(&models.OpenHouse{}).
		Where("end_time IS NOT NULL AND end_time < ?", openHouseCutoff).
		Count(&expiredOpenHouses).Error; err != nil {
		return nil, err
	}
	stats["expired_open_houses"] = expiredOpenHouses

	archivedCutoff := time.Now().AddDate(0, 0, -cfg.ArchivedRetentionDays)
	var staleArchived int64
	if err := s.db.Model(&models.Property{}).
		Where("is_archived = ? AND modification_timestamp < ?", true, archivedCutoff).
		Count(&staleArchived).Error; err != nil {
		return nil, err
	}
	stats["stale_archived_listings"] = staleArchived

	return stats, nil
}
