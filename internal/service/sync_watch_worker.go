package service

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/dafibh/fortuna/portfolio-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// WorkspaceSource lists the workspaces that currently have live clients
type WorkspaceSource interface {
	Workspaces() []int32
}

// WorkspaceSyncedPayload is pushed when a workspace finished an account sync
type WorkspaceSyncedPayload struct {
	WorkspaceID  int32     `json:"workspaceId"`
	LastSyncedAt time.Time `json:"lastSyncedAt"`
}

// SyncWatchWorker polls the workspaces of connected clients and tells them
// when a sync completed, so dashboards in the loading state can refresh.
type SyncWatchWorker struct {
	workspaceRepo domain.WorkspaceRepository
	source        WorkspaceSource
	publisher     websocket.EventPublisher
	logger        zerolog.Logger
	interval      time.Duration
	lastSeen      map[int32]time.Time
	stopCh        chan struct{}
	doneCh        chan struct{}
	stopOnce      sync.Once
	mu            sync.Mutex
	started       bool
	running       bool
}

// SyncWatchWorkerConfig holds configuration for the sync watch worker
type SyncWatchWorkerConfig struct {
	Interval time.Duration // How often connected workspaces are checked
}

// DefaultSyncWatchWorkerConfig returns sensible defaults
func DefaultSyncWatchWorkerConfig() SyncWatchWorkerConfig {
	return SyncWatchWorkerConfig{Interval: 15 * time.Second}
}

// NewSyncWatchWorker creates a new sync watch worker
func NewSyncWatchWorker(
	workspaceRepo domain.WorkspaceRepository,
	source WorkspaceSource,
	publisher websocket.EventPublisher,
	logger zerolog.Logger,
	config SyncWatchWorkerConfig,
) *SyncWatchWorker {
	if config.Interval <= 0 {
		config.Interval = DefaultSyncWatchWorkerConfig().Interval
	}

	return &SyncWatchWorker{
		workspaceRepo: workspaceRepo,
		source:        source,
		publisher:     publisher,
		logger:        logger.With().Str("component", "sync_watch_worker").Logger(),
		interval:      config.Interval,
		lastSeen:      make(map[int32]time.Time),
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Start begins polling in the background. A worker runs at most once.
func (w *SyncWatchWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.running = true
	w.mu.Unlock()

	w.logger.Info().Dur("interval", w.interval).Msg("Starting sync watch worker")

	go w.run(ctx)
}

// Stop gracefully stops the worker and waits for the loop to exit. It is
// safe to call repeatedly and from several goroutines.
func (w *SyncWatchWorker) Stop() {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if !started {
		return
	}

	w.stopOnce.Do(func() {
		w.logger.Info().Msg("Stopping sync watch worker")
		close(w.stopCh)
	})
	<-w.doneCh
	w.logger.Debug().Msg("Sync watch worker stopped")
}

func (w *SyncWatchWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.setRunning(false)
			return
		case <-w.stopCh:
			w.setRunning(false)
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

func (w *SyncWatchWorker) setRunning(running bool) {
	w.mu.Lock()
	w.running = running
	w.mu.Unlock()
}

// Check compares the last sync time of every connected workspace with the
// previous poll and publishes workspace.synced for those that moved forward.
// The first observation of a workspace only records its state.
func (w *SyncWatchWorker) Check(ctx context.Context) int {
	ids := w.source.Workspaces()
	published := 0

	for _, id := range ids {
		ws, err := w.workspaceRepo.GetByID(ctx, id)
		if err != nil {
			w.logger.Warn().Err(err).Int32("workspace_id", id).Msg("Failed to load workspace")
			continue
		}

		var syncedAt time.Time
		if ws.LastSyncedAt != nil {
			syncedAt = *ws.LastSyncedAt
		}

		w.mu.Lock()
		previous, seen := w.lastSeen[id]
		w.lastSeen[id] = syncedAt
		w.mu.Unlock()

		if !seen || !syncedAt.After(previous) {
			continue
		}

		w.publisher.Publish(id, websocket.WorkspaceSynced(WorkspaceSyncedPayload{
			WorkspaceID:  id,
			LastSyncedAt: syncedAt,
		}))
		published++
	}

	w.forget(ids)

	if published > 0 {
		w.logger.Debug().Int("workspaces", len(ids)).Int("published", published).Msg("Published sync notifications")
	}
	return published
}

// forget drops state of workspaces without clients
func (w *SyncWatchWorker) forget(active []int32) {
	keep := make(map[int32]bool, len(active))
	for _, id := range active {
		keep[id] = true
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for id := range w.lastSeen {
		if !keep[id] {
			delete(w.lastSeen, id)
		}
	}
}

// IsRunning returns whether the worker is currently running
func (w *SyncWatchWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
