package scheduler

import (
	"context"
	"errors"
	"fmt"

	"mls-sync/internal/cleanup"
	"mls-sync/internal/config"
	"mls-sync/internal/extraction"
	"mls-sync/internal/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PausedRunLookup is the slice of the run tracker the scheduler needs
// to pick the continuation trigger
type PausedRunLookup interface {
	GetLastPausedRun() (*models.ExtractionRun, error)
}

// Scheduler invokes the extraction orchestrator on a fixed interval.
// The orchestrator has no dependency on how it is invoked; the
// scheduler only supplies the provenance value.
type Scheduler struct {
	cron      *cron.Cron
	orch      *extraction.Orchestrator
	runs      PausedRunLookup
	retention *cleanup.Service
	config    *config.Config
	logger    *logrus.Logger
	isRunning bool
}

// NewScheduler creates a scheduler around the orchestrator. retention
// may be nil; the nightly retention pass is skipped then.
func NewScheduler(orch *extraction.Orchestrator, runs PausedRunLookup, retention *cleanup.Service, cfg *config.Config, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		orch:      orch,
		runs:      runs,
		retention: retention,
		config:    cfg,
		logger:    logger,
	}
}

// Start registers the periodic incremental sync and, when enabled, the
// nightly full resync
func (s *Scheduler) Start() error {
	if !s.config.Sync.CronEnabled {
		s.logger.Info("Scheduler: periodic sync is disabled in configuration")
		return nil
	}

	_, err := s.cron.AddFunc(s.config.Sync.CronSchedule, func() {
		s.runScheduledSync()
	})
	if err != nil {
		return err
	}

	if s.config.Sync.ResyncEnabled {
		resyncSpec := s.parseDailyRunTime(s.config.Sync.ResyncTime)
		_, err := s.cron.AddFunc(resyncSpec, func() {
			s.logger.Info("Scheduler: starting nightly full resync")
			if _, err := s.orch.Run(context.Background(), true, models.TriggerCron); err != nil {
				s.logScheduleError("full resync", err)
			}
			s.runRetention()
		})
		if err != nil {
			return err
		}
		s.logger.Infof("Scheduler: nightly resync at %s (cron: %s)", s.config.Sync.ResyncTime, resyncSpec)
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Infof("Scheduler: started with schedule %q", s.config.Sync.CronSchedule)
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		s.logger.Info("Scheduler: stopped")
	}
}

// runScheduledSync runs one incremental session. When the previous
// session paused at its limit, the trigger becomes a continuation so
// the paused run is resumed instead of starting a new one.
func (s *Scheduler) runScheduledSync() {
	triggeredBy := models.TriggerCron
	if paused, err := s.runs.GetLastPausedRun(); err == nil && paused != nil {
		triggeredBy = models.TriggerContinuation
	}

	stats, err := s.orch.Run(context.Background(), false, triggeredBy)
	if err != nil {
		s.logScheduleError("incremental sync", err)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"run_id":    stats.RunID,
		"status":    stats.Status,
		"processed": stats.Processed,
	}).Info("Scheduler: sync finished")
}

// runRetention runs one retention pass after the nightly resync
func (s *Scheduler) runRetention() {
	if s.retention == nil {
		return
	}
	if _, err := s.retention.Run(cleanup.DefaultConfig()); err != nil {
		s.logger.Errorf("Scheduler: retention pass failed: %v", err)
	}
}

// RunNow triggers a session outside the schedule (admin surface)
func (s *Scheduler) RunNow(isResync bool) (*extraction.RunStats, error) {
	return s.orch.Run(context.Background(), isResync, models.TriggerManual)
}

// logScheduleError downgrades lock contention to info: overlapping
// schedules are expected and the held lock already serializes runs
func (s *Scheduler) logScheduleError(what string, err error) {
	if errors.Is(err, extraction.ErrLockHeld) {
		s.logger.Infof("Scheduler: %s skipped, another run is active", what)
		return
	}
	s.logger.Errorf("Scheduler: %s failed: %v", what, err)
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "02:00" -> "0 2 * * *" (run at 2:00 AM every day)
func (s *Scheduler) parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	s.logger.Warnf("Scheduler: failed to parse time '%s', using default 02:00", timeStr)
	return "0 2 * * *"
}
