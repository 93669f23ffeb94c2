package handlers

import (
	"net/http"
	"strconv"
	"time"

	"mls-sync/internal/models"
	"mls-sync/internal/scheduler"
	"mls-sync/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminHandler exposes the operational surface of the sync engine:
// manual triggers, run history and live status
type AdminHandler struct {
	db        *gorm.DB
	scheduler *scheduler.Scheduler
	runs      *store.RunStore
	changeLog *store.ChangeLogStore
	logger    *logrus.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB, sched *scheduler.Scheduler, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		db:        db,
		scheduler: sched,
		runs:      store.NewRunStore(db),
		changeLog: store.NewChangeLogStore(db),
		logger:    logger,
	}
}

// TriggerSync manually starts an extraction session. ?resync=true
// forces a full resync instead of an incremental sync.
func (h *AdminHandler) TriggerSync(c *gin.Context) {
	isResync := c.Query("resync") == "true"

	h.logger.WithField("resync", isResync).Info("Admin: manual sync trigger requested")

	// Run in goroutine to avoid blocking; the lock serializes against
	// scheduled runs
	go func() {
		stats, err := h.scheduler.RunNow(isResync)
		if err != nil {
			h.logger.Errorf("Admin: manual sync failed: %v", err)
			return
		}
		h.logger.WithFields(logrus.Fields{
			"run_id": stats.RunID,
			"status": stats.Status,
		}).Info("Admin: manual sync finished")
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"message": "sync triggered",
		"resync":  isResync,
	})
}

// GetRuns returns recent extraction runs, newest first
func (h *AdminHandler) GetRuns(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "20")
	limit, _ := strconv.Atoi(limitStr)

	runs, err := h.runs.RecentRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}

// GetRun returns one extraction run by id
func (h *AdminHandler) GetRun(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := h.runs.GetRun(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// GetSyncStatus returns the currently active run (if any) and the most
// recent terminal run
func (h *AdminHandler) GetSyncStatus(c *gin.Context) {
	status := gin.H{}

	if active, err := h.runs.ActiveRun(); err == nil && active != nil {
		status["active_run"] = active
	}
	if paused, err := h.runs.GetLastPausedRun(); err == nil && paused != nil {
		status["paused_run"] = paused
	}
	if recent, err := h.runs.RecentRuns(1); err == nil && len(recent) > 0 {
		status["last_run"] = recent[0]
	}

	c.JSON(http.StatusOK, status)
}

// GetListingChanges returns the change history for one listing
func (h *AdminHandler) GetListingChanges(c *gin.Context) {
	listingKey := c.Param("key")
	limitStr := c.DefaultQuery("limit", "100")
	limit, _ := strconv.Atoi(limitStr)

	changes, err := h.changeLog.ListForListing(listingKey, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listing_key": listingKey,
		"changes":     changes,
		"count":       len(changes),
	})
}

// GetStats returns system statistics
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats := make(map[string]interface{})

	// Property counts by archive state
	var activeCount, archivedCount int64
	h.db.Model(&models.Property{}).Where("is_archived = ?", false).Count(&activeCount)
	h.db.Model(&models.Property{}).Where("is_archived = ?", true).Count(&archivedCount)

	stats["properties"] = map[string]interface{}{
		"active":   activeCount,
		"archived": archivedCount,
		"total":    activeCount + archivedCount,
	}

	// Related-entity counts
	var agentCount, officeCount, mediaCount, openHouseCount int64
	h.db.Model(&models.Agent{}).Count(&agentCount)
	h.db.Model(&models.Office{}).Count(&officeCount)
	h.db.Model(&models.Media{}).Count(&mediaCount)
	h.db.Model(&models.OpenHouse{}).Count(&openHouseCount)

	stats["related"] = map[string]interface{}{
		"agents":      agentCount,
		"offices":     officeCount,
		"media":       mediaCount,
		"open_houses": openHouseCount,
	}

	// Recent sync activity (last 24 hours)
	last24h := time.Now().AddDate(0, 0, -1)
	var recentlyUpdated int64
	h.db.Model(&models.Property{}).Where("updated_at >= ?", last24h).Count(&recentlyUpdated)
	stats["recent_activity"] = map[string]interface{}{
		"updated_last_24h": recentlyUpdated,
	}

	// Field changes (last 7 days)
	last7days := time.Now().AddDate(0, 0, -7)
	var recentChanges int64
	h.db.Model(&models.ChangeLog{}).Where("observed_at >= ?", last7days).Count(&recentChanges)
	stats["changes"] = map[string]interface{}{
		"last_7_days": recentChanges,
	}

	c.JSON(http.StatusOK, stats)
}
