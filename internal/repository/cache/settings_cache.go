package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const settingsNamespace = "settings"

// SettingsRepository caches settings reads in redis in front of another
// repository. Redis failures fall through to the wrapped repository.
type SettingsRepository struct {
	next   domain.SettingsRepository
	cache  *Cache
	ttl    time.Duration
	logger zerolog.Logger
}

var _ domain.SettingsRepository = (*SettingsRepository)(nil)

// NewSettingsRepository wraps next with a redis read-through cache
func NewSettingsRepository(next domain.SettingsRepository, cache *Cache, ttl time.Duration, logger zerolog.Logger) *SettingsRepository {
	return &SettingsRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "settings_cache").Logger(),
	}
}

func settingsKey(workspaceID int32) string {
	return strconv.FormatInt(int64(workspaceID), 10)
}

// Get returns cached settings or loads and caches them. The version is read
// before the load so a write that lands mid-load blocks the stale fill.
func (r *SettingsRepository) Get(ctx context.Context, workspaceID int32) (*domain.Settings, error) {
	key := settingsKey(workspaceID)

	raw, err := r.cache.Get(ctx, settingsNamespace, key)
	switch {
	case err == nil:
		var settings domain.Settings
		if jsonErr := json.Unmarshal([]byte(raw), &settings); jsonErr == nil {
			return &settings, nil
		}
		r.logger.Warn().Int32("workspace_id", workspaceID).Msg("Dropping undecodable cached settings")
		r.invalidate(ctx, workspaceID)
	case !errors.Is(err, redis.Nil):
		r.logger.Warn().Err(err).Int32("workspace_id", workspaceID).Msg("Settings cache read failed")
		return r.next.Get(ctx, workspaceID)
	}

	version, err := r.cache.Version(ctx, settingsNamespace, key)
	if err != nil {
		r.logger.Warn().Err(err).Int32("workspace_id", workspaceID).Msg("Settings cache version read failed")
		return r.next.Get(ctx, workspaceID)
	}

	settings, err := r.next.Get(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(settings); err == nil {
		stored, err := r.cache.SetIfVersion(ctx, settingsNamespace, key, version, data, r.ttl)
		switch {
		case err != nil:
			r.logger.Warn().Err(err).Int32("workspace_id", workspaceID).Msg("Settings cache write failed")
		case !stored:
			r.logger.Debug().Int32("workspace_id", workspaceID).Msg("Skipped settings cache fill after concurrent write")
		}
	}
	return settings, nil
}

// Save writes through and invalidates the cached entry
func (r *SettingsRepository) Save(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	saved, err := r.next.Save(ctx, settings)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, settings.WorkspaceID)
	return saved, nil
}

// DismissBanner writes through and invalidates the cached entry
func (r *SettingsRepository) DismissBanner(ctx context.Context, workspaceID int32, bannerID string) error {
	if err := r.next.DismissBanner(ctx, workspaceID, bannerID); err != nil {
		return err
	}
	r.invalidate(ctx, workspaceID)
	return nil
}

func (r *SettingsRepository) invalidate(ctx context.Context, workspaceID int32) {
	if err := r.cache.Invalidate(ctx, settingsNamespace, settingsKey(workspaceID)); err != nil {
		r.logger.Warn().Err(err).Int32("workspace_id", workspaceID).Msg("Settings cache invalidation failed")
	}
}
