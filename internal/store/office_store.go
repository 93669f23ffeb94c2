package store

import (
	"errors"

	"mls-sync/internal/models"

	"gorm.io/gorm"
)

// OfficeStore persists brokerage office records keyed by the provider office key
type OfficeStore struct {
	db *gorm.DB
}

// NewOfficeStore creates an office store
func NewOfficeStore(db *gorm.DB) *OfficeStore {
	return &OfficeStore{db: db}
}

// Upsert inserts or updates an office by office key
func (s *OfficeStore) Upsert(o *models.Office) error {
	var existing models.Office
	err := s.db.Where("office_key = ?", o.OfficeKey).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(o).Error
	}
	if err != nil {
		return err
	}

	o.ID = existing.ID
	o.CreatedAt = existing.CreatedAt
	return s.db.Save(o).Error
}
