package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Workspace represents a user's workspace
type Workspace struct {
	ID           int32      `json:"id"`
	UserID       uuid.UUID  `json:"userId"`
	Name         string     `json:"name"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// HasSynced reports whether the account sync finished at least once
func (w *Workspace) HasSynced() bool {
	return w != nil && w.LastSyncedAt != nil
}

// WorkspaceRepository defines the interface for workspace lookups
type WorkspaceRepository interface {
	GetByID(ctx context.Context, id int32) (*Workspace, error)
	GetByUserAuth0ID(ctx context.Context, auth0ID string) (*Workspace, error)
	// CreateForUser creates the user's workspace, returning the existing one
	// if another request created it first
	CreateForUser(ctx context.Context, userID uuid.UUID, name string) (*Workspace, error)
}

// DefaultWorkspaceName is the name of workspaces created on first login
const DefaultWorkspaceName = "My Portfolio"
