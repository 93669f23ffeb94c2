package store

import (
	"mls-sync/internal/models"

	"gorm.io/gorm"
)

// OpenHouseStore persists open houses with full-replacement semantics
type OpenHouseStore struct {
	db *gorm.DB
}

// NewOpenHouseStore creates an open house store
func NewOpenHouseStore(db *gorm.DB) *OpenHouseStore {
	return &OpenHouseStore{db: db}
}

// ReplaceForListing replaces the full open house set of a listing in
// one transaction
func (s *OpenHouseStore) ReplaceForListing(listingKey string, items []models.OpenHouse) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_key = ?", listingKey).Delete(&models.OpenHouse{}).Error; err != nil {
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
