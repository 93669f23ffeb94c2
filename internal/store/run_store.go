package store

import (
	"errors"
	"time"

	"mls-sync/internal/models"

	"gorm.io/gorm"
)

// RunStore is the run tracker: it persists the lifecycle and metrics
// of extraction runs. The orchestrator owns the run state; this store
// only persists what it is told.
type RunStore struct {
	db *gorm.DB
}

// NewRunStore creates a run store
func NewRunStore(db *gorm.DB) *RunStore {
	return &RunStore{db: db}
}

// StartRun creates a new run record in the running state
func (s *RunStore) StartRun(kind models.RunKind, triggeredBy string) (*models.ExtractionRun, error) {
	run := &models.ExtractionRun{
		Kind:        kind,
		TriggeredBy: triggeredBy,
		Status:      models.RunStatusRunning,
		StartedAt:   time.Now(),
	}
	if err := s.db.Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// UpdateMetrics flushes the run's cumulative counters. Called after
// every batch so observers see live progress.
func (s *RunStore) UpdateMetrics(run *models.ExtractionRun) error {
	return s.db.Save(run).Error
}

// PauseRun persists a paused run with its resume cursor
func (s *RunStore) PauseRun(run *models.ExtractionRun) error {
	return s.db.Save(run).Error
}

// CompleteRun persists a completed run
func (s *RunStore) CompleteRun(run *models.ExtractionRun) error {
	return s.db.Save(run).Error
}

// FailRun persists a failed run with its failure reason
func (s *RunStore) FailRun(run *models.ExtractionRun) error {
	return s.db.Save(run).Error
}

// GetLastPausedRun returns the most recently paused run, or (nil, nil)
// when none exists
func (s *RunStore) GetLastPausedRun() (*models.ExtractionRun, error) {
	var run models.ExtractionRun
	err := s.db.Where("status = ?", models.RunStatusPaused).
		Order("started_at DESC").
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRun returns one run by id
func (s *RunStore) GetRun(id int64) (*models.ExtractionRun, error) {
	var run models.ExtractionRun
	err := s.db.First(&run, id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// RecentRuns returns the latest runs, newest first
func (s *RunStore) RecentRuns(limit int) ([]models.ExtractionRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []models.ExtractionRun
	err := s.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// ActiveRun returns the currently running run, or (nil, nil)
func (s *RunStore) ActiveRun() (*models.ExtractionRun, error) {
	var run models.ExtractionRun
	err := s.db.Where("status = ?", models.RunStatusRunning).
		Order("started_at DESC").
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
