package extraction

import (
	"context"
	"fmt"
	"sort"
	"time"

	"mls-sync/internal/config"
	"mls-sync/internal/lock"
	"mls-sync/internal/mlsapi"
	"mls-sync/internal/models"
	"mls-sync/internal/normalize"

	"github.com/sirupsen/logrus"
)

// ApiClient pulls listing pages and related resources from the
// upstream provider
type ApiClient interface {
	FetchListings(ctx context.Context, filter string, onBatch mlsapi.BatchFunc, sessionLimit int) (int, error)
	FetchRelated(ctx context.Context, resource, keyField string, keys []string) ([]mlsapi.RawRecord, error)
}

// PropertyStore persists canonical listing records
type PropertyStore interface {
	FindByKey(listingKey string) (*models.Property, error)
	Upsert(p *models.Property) (created bool, err error)
	Update(listingKey string, fields map[string]interface{}) error
	LatestModificationTimestamp() (*time.Time, error)
}

// AgentStore persists agents
type AgentStore interface {
	Upsert(a *models.Agent) error
}

// OfficeStore persists offices
type OfficeStore interface {
	Upsert(o *models.Office) error
}

// MediaStore persists listing media
type MediaStore interface {
	ReplaceForListing(listingKey string, items []models.Media) error
}

// OpenHouseStore persists open houses
type OpenHouseStore interface {
	ReplaceForListing(listingKey string, items []models.OpenHouse) error
}

// ChangeLogStore appends field-change history
type ChangeLogStore interface {
	Append(entries []models.ChangeLog) error
}

// RunTracker persists run lifecycle and metrics
type RunTracker interface {
	StartRun(kind models.RunKind, triggeredBy string) (*models.ExtractionRun, error)
	UpdateMetrics(run *models.ExtractionRun) error
	PauseRun(run *models.ExtractionRun) error
	CompleteRun(run *models.ExtractionRun) error
	FailRun(run *models.ExtractionRun) error
	GetLastPausedRun() (*models.ExtractionRun, error)
}

// SearchIndexer pushes upserted properties into the search index
type SearchIndexer interface {
	IndexProperties(properties []models.Property) error
}

// RunStats summarizes one extraction run for the caller
type RunStats struct {
	RunID     int64            `json:"run_id"`
	Status    models.RunStatus `json:"status"`
	Processed int              `json:"processed"`
	Created   int              `json:"created"`
	Updated   int              `json:"updated"`
	Archived  int              `json:"archived"`
	Errors    int              `json:"errors"`
}

// Orchestrator coordinates one extraction session: locking, sync
// filter selection, paging, normalization, upsert, enrichment and
// pause/resume. Invocations are serialized by a distributed lock;
// processing within a run is single-threaded.
type Orchestrator struct {
	apiCfg  config.MLSApiConfig
	syncCfg config.SyncConfig
	logger  *logrus.Logger

	api        ApiClient
	locker     lock.Lock
	runs       RunTracker
	properties PropertyStore
	agents     AgentStore
	offices    OfficeStore
	media      MediaStore
	openHouses OpenHouseStore
	changeLog  ChangeLogStore
	searchIdx  SearchIndexer
}

// NewOrchestrator wires the extraction engine. searchIdx may be nil
// when no search backend is configured.
func NewOrchestrator(
	apiCfg config.MLSApiConfig,
	syncCfg config.SyncConfig,
	api ApiClient,
	locker lock.Lock,
	runs RunTracker,
	properties PropertyStore,
	agents AgentStore,
	offices OfficeStore,
	media MediaStore,
	openHouses OpenHouseStore,
	changeLog ChangeLogStore,
	searchIdx SearchIndexer,
	logger *logrus.Logger,
) *Orchestrator {
	return &Orchestrator{
		apiCfg:     apiCfg,
		syncCfg:    syncCfg,
		logger:     logger,
		api:        api,
		locker:     locker,
		runs:       runs,
		properties: properties,
		agents:     agents,
		offices:    offices,
		media:      media,
		openHouses: openHouses,
		changeLog:  changeLog,
		searchIdx:  searchIdx,
	}
}

// batchState accumulates per-session progress across batches
type batchState struct {
	sessionProcessed  int
	consecutiveErrors int
	maxModified       *time.Time
	pausedByLimit     bool
}

// Run executes one extraction session and returns its stats. It is the
// sole entrypoint the scheduler (or an operator) calls.
func (o *Orchestrator) Run(ctx context.Context, isResync bool, triggeredBy string) (*RunStats, error) {
	if !o.apiCfg.HasCredentials() {
		return nil, ErrMissingCredentials
	}

	acquired, err := o.locker.Acquire(ctx, o.syncCfg.LockName, o.syncCfg.GetLockTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to acquire extraction lock: %w", err)
	}
	if !acquired {
		return nil, ErrLockHeld
	}
	defer func() {
		if releaseErr := o.locker.Release(ctx, o.syncCfg.LockName); releaseErr != nil {
			o.logger.WithField("lock", o.syncCfg.LockName).
				Warnf("Extraction: failed to release lock: %v", releaseErr)
		}
	}()

	run, err := o.resolveRun(isResync, triggeredBy)
	if err != nil {
		return nil, err
	}

	o.logger.WithFields(logrus.Fields{
		"run_id":       run.ID,
		"kind":         run.Kind,
		"triggered_by": triggeredBy,
	}).Info("Extraction: run started")

	state := &batchState{maxModified: run.ResumeCursor}

	if err := o.executeSession(ctx, run, isResync, state); err != nil {
		run.MarkFailed(err.Error())
		if failErr := o.runs.FailRun(run); failErr != nil {
			o.logger.Warnf("Extraction: failed to persist failed run %d: %v", run.ID, failErr)
		}
		o.logger.WithField("run_id", run.ID).Errorf("Extraction: run failed: %v", err)
		return statsFor(run), err
	}

	if state.pausedByLimit {
		run.MarkPaused(state.maxModified)
		if err := o.runs.PauseRun(run); err != nil {
			return statsFor(run), fmt.Errorf("failed to pause run %d: %w", run.ID, err)
		}
		o.logger.WithFields(logrus.Fields{
			"run_id":    run.ID,
			"processed": run.Processed,
			"cursor":    state.maxModified,
		}).Info("Extraction: session limit reached, run paused")
	} else {
		run.MarkCompleted()
		if err := o.runs.CompleteRun(run); err != nil {
			return statsFor(run), fmt.Errorf("failed to complete run %d: %w", run.ID, err)
		}
		o.logger.WithFields(logrus.Fields{
			"run_id":    run.ID,
			"processed": run.Processed,
			"created":   run.Created,
			"updated":   run.Updated,
			"archived":  run.Archived,
			"errors":    run.Errors,
		}).Info("Extraction: run completed")
	}

	return statsFor(run), nil
}

// resolveRun reactivates the last paused run on a continuation
// trigger, otherwise starts a new run record
func (o *Orchestrator) resolveRun(isResync bool, triggeredBy string) (*models.ExtractionRun, error) {
	if triggeredBy == models.TriggerContinuation {
		paused, err := o.runs.GetLastPausedRun()
		if err != nil {
			return nil, fmt.Errorf("failed to look up paused run: %w", err)
		}
		if paused != nil {
			paused.Reactivate(triggeredBy)
			if err := o.runs.UpdateMetrics(paused); err != nil {
				return nil, fmt.Errorf("failed to reactivate run %d: %w", paused.ID, err)
			}
			o.logger.WithFields(logrus.Fields{
				"run_id": paused.ID,
				"cursor": paused.ResumeCursor,
			}).Info("Extraction: reactivated paused run")
			return paused, nil
		}
	}

	kind := models.RunKindIncremental
	if isResync {
		kind = models.RunKindFull
	}
	return o.runs.StartRun(kind, triggeredBy)
}

// executeSession builds the sync filter and drives the API client
// through pages until exhaustion, the session limit, or failure
func (o *Orchestrator) executeSession(ctx context.Context, run *models.ExtractionRun, isResync bool, state *batchState) error {
	filter, err := o.buildFilter(run, isResync)
	if err != nil {
		return err
	}

	onBatch := func(batch []mlsapi.RawRecord, totalSoFar int) (bool, error) {
		if err := o.processBatch(ctx, run, batch, state); err != nil {
			return false, err
		}

		state.sessionProcessed += len(batch)
		if err := o.runs.UpdateMetrics(run); err != nil {
			return false, fmt.Errorf("failed to flush run metrics: %w", err)
		}

		if state.sessionProcessed >= o.syncCfg.SessionLimit {
			state.pausedByLimit = true
			return true, nil
		}
		return false, nil
	}

	_, err = o.api.FetchListings(ctx, filter, onBatch, o.syncCfg.SessionLimit)
	return err
}

// buildFilter selects the sync filter: full resync has no time bound;
// incremental bounds by the reactivated run's cursor or, absent that,
// the latest modification timestamp already stored
func (o *Orchestrator) buildFilter(run *models.ExtractionRun, isResync bool) (string, error) {
	if isResync {
		return mlsapi.BuildResyncFilter(), nil
	}

	cursor := run.ResumeCursor
	if cursor == nil {
		latest, err := o.properties.LatestModificationTimestamp()
		if err != nil {
			return "", fmt.Errorf("failed to read latest modification timestamp: %w", err)
		}
		cursor = latest
	}
	return mlsapi.BuildIncrementalFilter(cursor), nil
}

// processBatch normalizes, diffs and upserts every record of one page,
// then enriches the page with related entities
func (o *Orchestrator) processBatch(ctx context.Context, run *models.ExtractionRun, batch []mlsapi.RawRecord, state *batchState) error {
	var (
		agentKeys   []string
		officeKeys  []string
		listingKeys []string
		upserted    []models.Property
	)

	for _, raw := range batch {
		property, err := o.processRecord(run, raw, state)
		if err != nil {
			run.Errors++
			state.consecutiveErrors++
			o.logger.Warnf("Extraction: record skipped: %v", err)
			if state.consecutiveErrors >= o.syncCfg.MaxConsecutiveErrors {
				return fmt.Errorf("%w (%d in a row)", errTooManyErrors, state.consecutiveErrors)
			}
			continue
		}

		state.consecutiveErrors = 0
		agentKeys = append(agentKeys, property.ListAgentKey, property.BuyerAgentKey)
		officeKeys = append(officeKeys, property.ListOfficeKey, property.BuyerOfficeKey)
		listingKeys = append(listingKeys, property.ListingKey)
		upserted = append(upserted, *property)
	}

	o.enrichBatch(ctx, agentKeys, officeKeys, listingKeys)

	// Index what this batch upserted; failures must not fail the run
	if o.searchIdx != nil && len(upserted) > 0 {
		if err := o.searchIdx.IndexProperties(upserted); err != nil {
			o.logger.Warnf("Extraction: search indexing failed for batch: %v", err)
		}
	}

	return nil
}

// processRecord handles one raw listing: normalize, diff against the
// stored record, persist changes, upsert
func (o *Orchestrator) processRecord(run *models.ExtractionRun, raw mlsapi.RawRecord, state *batchState) (*models.Property, error) {
	property, err := normalize.NormalizeProperty(raw)
	if err != nil {
		return nil, err
	}

	existing, err := o.properties.FindByKey(property.ListingKey)
	if err != nil {
		return nil, fmt.Errorf("lookup failed for %s: %w", property.ListingKey, err)
	}

	if existing != nil {
		changes := normalize.DetectChanges(existing, property, time.Now())
		if len(changes) > 0 {
			if err := o.changeLog.Append(changes); err != nil {
				return nil, fmt.Errorf("change log append failed for %s: %w", property.ListingKey, err)
			}
		}
	}

	created, err := o.properties.Upsert(property)
	if err != nil {
		return nil, fmt.Errorf("upsert failed for %s: %w", property.ListingKey, err)
	}

	run.Processed++
	if created {
		run.Created++
	} else {
		run.Updated++
	}
	if property.IsArchived && (existing == nil || !existing.IsArchived) {
		run.Archived++
	}

	if ts := property.ModificationTimestamp; ts != nil {
		if state.maxModified == nil || ts.After(*state.maxModified) {
			state.maxModified = ts
		}
	}

	return property, nil
}

// enrichBatch fetches and persists related entities for one batch.
// Each resource type is isolated: a failure is logged and must not
// block the other types or fail the run.
func (o *Orchestrator) enrichBatch(ctx context.Context, agentKeys, officeKeys, listingKeys []string) {
	if err := o.enrichAgents(ctx, agentKeys); err != nil {
		o.logger.Warnf("Extraction: agent enrichment failed: %v", err)
	}
	if err := o.enrichOffices(ctx, officeKeys); err != nil {
		o.logger.Warnf("Extraction: office enrichment failed: %v", err)
	}
	if err := o.enrichMedia(ctx, listingKeys); err != nil {
		o.logger.Warnf("Extraction: media enrichment failed: %v", err)
	}
	if err := o.enrichOpenHouses(ctx, listingKeys); err != nil {
		o.logger.Warnf("Extraction: open house enrichment failed: %v", err)
	}
}

func (o *Orchestrator) enrichAgents(ctx context.Context, keys []string) error {
	records, err := o.api.FetchRelated(ctx, "Member", "MemberKey", keys)
	if err != nil {
		return err
	}
	for _, raw := range records {
		agent := normalize.NormalizeAgent(raw)
		if agent.AgentKey == "" {
			continue
		}
		if err := o.agents.Upsert(agent); err != nil {
			o.logger.Warnf("Extraction: agent upsert failed for %s: %v", agent.AgentKey, err)
		}
	}
	return nil
}

func (o *Orchestrator) enrichOffices(ctx context.Context, keys []string) error {
	records, err := o.api.FetchRelated(ctx, "Office", "OfficeKey", keys)
	if err != nil {
		return err
	}
	for _, raw := range records {
		office := normalize.NormalizeOffice(raw)
		if office.OfficeKey == "" {
			continue
		}
		if err := o.offices.Upsert(office); err != nil {
			o.logger.Warnf("Extraction: office upsert failed for %s: %v", office.OfficeKey, err)
		}
	}
	return nil
}

// enrichMedia replaces each listing's media set and refreshes the
// denormalized main-photo fields when a primary photo exists
func (o *Orchestrator) enrichMedia(ctx context.Context, listingKeys []string) error {
	records, err := o.api.FetchRelated(ctx, "Media", "ResourceRecordKey", listingKeys)
	if err != nil {
		return err
	}

	grouped := make(map[string][]models.Media)
	for _, raw := range records {
		media := normalize.NormalizeMedia(raw)
		if media.ListingKey == "" || media.MediaURL == "" {
			continue
		}
		grouped[media.ListingKey] = append(grouped[media.ListingKey], *media)
	}

	for listingKey, items := range grouped {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].SortOrder < items[j].SortOrder
		})
		if err := o.media.ReplaceForListing(listingKey, items); err != nil {
			o.logger.Warnf("Extraction: media replace failed for %s: %v", listingKey, err)
			continue
		}
		updateErr := o.properties.Update(listingKey, map[string]interface{}{
			"main_photo_url": items[0].MediaURL,
			"photo_count":    len(items),
		})
		if updateErr != nil {
			o.logger.Warnf("Extraction: photo denormalization failed for %s: %v", listingKey, updateErr)
		}
	}
	return nil
}

func (o *Orchestrator) enrichOpenHouses(ctx context.Context, listingKeys []string) error {
	records, err := o.api.FetchRelated(ctx, "OpenHouse", "ListingKey", listingKeys)
	if err != nil {
		return err
	}

	grouped := make(map[string][]models.OpenHouse)
	for _, raw := range records {
		openHouse := normalize.NormalizeOpenHouse(raw)
		if openHouse.ListingKey == "" {
			continue
		}
		grouped[openHouse.ListingKey] = append(grouped[openHouse.ListingKey], *openHouse)
	}

	for listingKey, items := range grouped {
		if err := o.openHouses.ReplaceForListing(listingKey, items); err != nil {
			o.logger.Warnf("Extraction: open house replace failed for %s: %v", listingKey, err)
		}
	}
	return nil
}

func statsFor(run *models.ExtractionRun) *RunStats {
	return &RunStats{
		RunID:     run.ID,
		Status:    run.Status,
		Processed: run.Processed,
		Created:   run.Created,
		Updated:   run.Updated,
		Archived:  run.Archived,
		Errors:    run.Errors,
	}
}
