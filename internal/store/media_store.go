package store

import (
	"mls-sync/internal/models"

	"gorm.io/gorm"
)

// MediaStore persists listing media with full-replacement semantics
type MediaStore struct {
	db *gorm.DB
}

// NewMediaStore creates a media store
func NewMediaStore(db *gorm.DB) *MediaStore {
	return &MediaStore{db: db}
}

// ReplaceForListing replaces the full media set of a listing in one
// transaction. The upstream response is authoritative per listing, so
// the set is not diffed.
func (s *MediaStore) ReplaceForListing(listingKey string, items []models.Media) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_key = ?", listingKey).Delete(&models.Media{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = 0
			items[i].ListingKey = listingKey
		}
		return tx.Create(&items).Error
	})
}

// ListForListing returns a listing's media ordered by sort order
func (s *MediaStore) ListForListing(listingKey string) ([]models.Media, error) {
	var items []models.Media
	err := s.db.Where("listing_key = ?", listingKey).
		Order("sort_order ASC").
		Find(&items).Error
	return items, err
}
