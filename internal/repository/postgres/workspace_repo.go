package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkspaceRepository implements domain.WorkspaceRepository using PostgreSQL
type WorkspaceRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(pool *pgxpool.Pool) *WorkspaceRepository {
	return &WorkspaceRepository{pool: pool}
}

const workspaceColumns = `w.id, w.user_id, w.name, w.last_synced_at, w.created_at, w.updated_at`

// GetByID retrieves a workspace by its ID
func (r *WorkspaceRepository) GetByID(ctx context.Context, id int32) (*domain.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces w WHERE w.id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByUserAuth0ID retrieves a workspace by the owner's Auth0 ID
func (r *WorkspaceRepository) GetByUserAuth0ID(ctx context.Context, auth0ID string) (*domain.Workspace, error) {
	query := `
		SELECT ` + workspaceColumns + `
		FROM workspaces w
		JOIN users u ON u.id = w.user_id
		WHERE u.auth0_id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, auth0ID))
}

// CreateForUser creates the user's workspace. The unique index on user_id
// makes concurrent first requests converge on one row.
func (r *WorkspaceRepository) CreateForUser(ctx context.Context, userID uuid.UUID, name string) (*domain.Workspace, error) {
	query := `
		INSERT INTO workspaces AS w (user_id, name)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = w.updated_at
		RETURNING ` + workspaceColumns
	ws, err := r.scanOne(r.pool.QueryRow(ctx, query, userID, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace for user %v: %w", userID, err)
	}
	return ws, nil
}

func (r *WorkspaceRepository) scanOne(row pgx.Row) (*domain.Workspace, error) {
	ws := &domain.Workspace{}
	err := row.Scan(&ws.ID, &ws.UserID, &ws.Name, &ws.LastSyncedAt, &ws.CreatedAt, &ws.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return ws, nil
}
