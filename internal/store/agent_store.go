package store

import (
	"errors"

	"mls-sync/internal/models"

	"gorm.io/gorm"
)

// AgentStore persists agent records keyed by the provider agent key
type AgentStore struct {
	db *gorm.DB
}

// NewAgentStore creates an agent store
func NewAgentStore(db *gorm.DB) *AgentStore {
	return &AgentStore{db: db}
}

// Upsert inserts or updates an agent by agent key
func (s *AgentStore) Upsert(a *models.Agent) error {
	var existing models.Agent
	err := s.db.Where("agent_key = ?", a.AgentKey).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(a).Error
	}
	if err != nil {
		return err
	}

	a.ID = existing.ID
	a.CreatedAt = existing.CreatedAt
	return s.db.Save(a).Error
}
