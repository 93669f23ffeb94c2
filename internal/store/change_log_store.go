package store

import (
	"mls-sync/internal/models"

	"gorm.io/gorm"
)

// ChangeLogStore appends immutable field-change history
type ChangeLogStore struct {
	db *gorm.DB
}

// NewChangeLogStore creates a change log store
func NewChangeLogStore(db *gorm.DB) *ChangeLogStore {
	return &ChangeLogStore{db: db}
}

// Append writes change entries. Entries are never updated or deleted.
func (s *ChangeLogStore) Append(entries []models.ChangeLog) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.Create(&entries).Error
}

// ListForListing returns the most recent changes for one listing
func (s *ChangeLogStore) ListForListing(listingKey string, limit int) ([]models.ChangeLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var entries []models.ChangeLog
	err := s.db.Where("listing_key = ?", listingKey).
		Order("observed_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
