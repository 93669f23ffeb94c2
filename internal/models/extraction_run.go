package models

import "time"

// RunKind distinguishes full resyncs from incremental syncs
type RunKind string

const (
	RunKindFull        RunKind = "full"
	RunKindIncremental RunKind = "incremental"
)

// RunStatus is the lifecycle state of an extraction run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusPaused    RunStatus = "paused"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// TriggeredBy provenance values passed in by the scheduler boundary
const (
	TriggerCron         = "cron"
	TriggerManual       = "manual"
	TriggerContinuation = "continuation"
)

// ExtractionRun identifies one ingestion session against the upstream provider
type ExtractionRun struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind        RunKind    `gorm:"type:varchar(20);not null" json:"kind"`
	TriggeredBy string     `gorm:"type:varchar(40);not null" json:"triggered_by"`
	Status      RunStatus  `gorm:"type:varchar(20);not null;default:'running';index" json:"status"`

	Processed int `gorm:"not null;default:0" json:"processed"`
	Created   int `gorm:"not null;default:0" json:"created"`
	Updated   int `gorm:"not null;default:0" json:"updated"`
	Archived  int `gorm:"not null;default:0" json:"archived"`
	Errors    int `gorm:"not null;default:0" json:"errors"`

	// ResumeCursor is the last-seen modification timestamp, persisted when a
	// session pauses so the next continuation run fetches from a safe lower bound.
	ResumeCursor  *time.Time `gorm:"type:datetime" json:"resume_cursor,omitempty"`
	FailureReason string     `gorm:"type:text" json:"failure_reason,omitempty"`

	StartedAt time.Time  `gorm:"type:datetime;not null" json:"started_at"`
	EndedAt   *time.Time `gorm:"type:datetime" json:"ended_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (ExtractionRun) TableName() string {
	return "extraction_runs"
}

// IsTerminal reports whether the run reached a final state
func (r *ExtractionRun) IsTerminal() bool {
	return r.Status == RunStatusCompleted || r.Status == RunStatusFailed
}

// Reactivate puts a paused run back into the running state, keeping its
// id, counters and resume cursor
func (r *ExtractionRun) Reactivate(triggeredBy string) {
	r.Status = RunStatusRunning
	r.TriggeredBy = triggeredBy
	r.EndedAt = nil
	r.FailureReason = ""
}

// MarkPaused suspends the run with the cursor to continue from
func (r *ExtractionRun) MarkPaused(cursor *time.Time) {
	r.Status = RunStatusPaused
	r.ResumeCursor = cursor
	now := time.Now()
	r.EndedAt = &now
}

// MarkCompleted finishes the run successfully
func (r *ExtractionRun) MarkCompleted() {
	r.Status = RunStatusCompleted
	now := time.Now()
	r.EndedAt = &now
}

// MarkFailed finishes the run with a human-readable reason
func (r *ExtractionRun) MarkFailed(reason string) {
	r.Status = RunStatusFailed
	r.FailureReason = reason
	now := time.Now()
	r.EndedAt = &now
}
