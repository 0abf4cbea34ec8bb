package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Account is a wallet account as synced into the workspace. The dashboard only
// reads accounts; they are created and refreshed by the sync pipeline.
type Account struct {
	ID          string          `json:"id"`
	WorkspaceID int32           `json:"workspaceId"`
	Name        string          `json:"name"`
	Currency    Currency        `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	Index       int             `json:"index"`
	Operations  []Operation     `json:"operations"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// AccountRepository reads accounts and their operation history
type AccountRepository interface {
	GetAllByWorkspace(ctx context.Context, workspaceID int32) ([]*Account, error)
	GetByID(ctx context.Context, workspaceID int32, id string) (*Account, error)
}
