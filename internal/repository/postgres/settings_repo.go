package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository implements domain.SettingsRepository using PostgreSQL
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get retrieves the settings and banner dismissals of a workspace
func (r *SettingsRepository) Get(ctx context.Context, workspaceID int32) (*domain.Settings, error) {
	settings := &domain.Settings{WorkspaceID: workspaceID}
	var timeRange string
	err := r.pool.QueryRow(ctx, `
		SELECT selected_time_range, counter_value, order_accounts, updated_at
		FROM workspace_settings
		WHERE workspace_id = $1
	`, workspaceID).Scan(&timeRange, &settings.CounterValue, &settings.OrderAccounts, &settings.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	settings.SelectedTimeRange = domain.TimeRange(timeRange)

	dismissed, err := r.dismissedBanners(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	settings.DismissedBanners = dismissed
	return settings, nil
}

func (r *SettingsRepository) dismissedBanners(ctx context.Context, workspaceID int32) (map[string]bool, error) {
	rows, err := r.pool.Query(ctx, `SELECT banner_id FROM banner_dismissals WHERE workspace_id = $1`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dismissals: %w", err)
	}
	defer rows.Close()

	dismissed := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan dismissal: %w", err)
		}
		dismissed[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list dismissals: %w", err)
	}
	return dismissed, nil
}

// Save upserts the preference columns. Dismissals are managed by DismissBanner.
func (r *SettingsRepository) Save(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	saved := *settings
	err := r.pool.QueryRow(ctx, `
		INSERT INTO workspace_settings (workspace_id, selected_time_range, counter_value, order_accounts, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (workspace_id) DO UPDATE SET
			selected_time_range = EXCLUDED.selected_time_range,
			counter_value = EXCLUDED.counter_value,
			order_accounts = EXCLUDED.order_accounts,
			updated_at = now()
		RETURNING updated_at
	`, settings.WorkspaceID, string(settings.SelectedTimeRange), settings.CounterValue, settings.OrderAccounts).Scan(&saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	dismissed, err := r.dismissedBanners(ctx, settings.WorkspaceID)
	if err != nil {
		return nil, err
	}
	saved.DismissedBanners = dismissed
	return &saved, nil
}

// DismissBanner records a dismissal. A default settings row is created first
// so a workspace that only dismissed banners still has settings.
func (r *SettingsRepository) DismissBanner(ctx context.Context, workspaceID int32, bannerID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO workspace_settings (workspace_id) VALUES ($1)
		ON CONFLICT (workspace_id) DO NOTHING
	`, workspaceID); err != nil {
		return fmt.Errorf("failed to create settings: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO banner_dismissals (workspace_id, banner_id) VALUES ($1, $2)
		ON CONFLICT (workspace_id, banner_id) DO NOTHING
	`, workspaceID, bannerID); err != nil {
		return fmt.Errorf("failed to record dismissal: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit dismissal: %w", err)
	}
	return nil
}
