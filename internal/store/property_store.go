package store

import (
	"errors"
	"time"

	"mls-sync/internal/models"

	"gorm.io/gorm"
)

// PropertyStore persists canonical property records
type PropertyStore struct {
	db *gorm.DB
}

// NewPropertyStore creates a property store
func NewPropertyStore(db *gorm.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

// FindByKey retrieves a property by listing key. Returns (nil, nil) when
// no record exists.
func (s *PropertyStore) FindByKey(listingKey string) (*models.Property, error) {
	var property models.Property
	err := s.db.Where("listing_key = ?", listingKey).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// Upsert inserts or updates a property keyed by listing key, reporting
// whether a new row was created
func (s *PropertyStore) Upsert(p *models.Property) (bool, error) {
	var existing models.Property
	err := s.db.Where("listing_key = ?", p.ListingKey).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if createErr := s.db.Create(p).Error; createErr != nil {
			return false, createErr
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	// Update existing row, keeping the original identity, CreatedAt and
	// the enrichment-owned photo columns
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.PreservePhotoFields(&existing)
	if saveErr := s.db.Save(p).Error; saveErr != nil {
		return false, saveErr
	}
	return false, nil
}

// Update applies a partial column update to a property by listing key.
// Used for photo denormalization after media enrichment.
func (s *PropertyStore) Update(listingKey string, fields map[string]interface{}) error {
	return s.db.Model(&models.Property{}).
		Where("listing_key = ?", listingKey).
		Updates(fields).Error
}

// LatestModificationTimestamp returns the most recent provider
// modification timestamp already persisted, or nil for an empty store.
// Used as the incremental cursor when no paused run supplies one.
func (s *PropertyStore) LatestModificationTimestamp() (*time.Time, error) {
	var property models.Property
	err := s.db.Where("modification_timestamp IS NOT NULL").
		Order("modification_timestamp DESC").
		First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return property.ModificationTimestamp, nil
}
