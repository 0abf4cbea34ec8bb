package domain

import (
	"context"
	"time"
)

// Default settings applied to workspaces that never saved any
const (
	DefaultCounterValue  = "USD"
	DefaultOrderAccounts = "balance|desc"
)

// Settings are the per-workspace dashboard preferences
type Settings struct {
	WorkspaceID       int32           `json:"workspaceId"`
	SelectedTimeRange TimeRange       `json:"selectedTimeRange"`
	CounterValue      string          `json:"counterValue"`
	OrderAccounts     string          `json:"orderAccounts"`
	DismissedBanners  map[string]bool `json:"dismissedBanners"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// DefaultSettings returns the settings used when nothing was persisted
func DefaultSettings(workspaceID int32) *Settings {
	return &Settings{
		WorkspaceID:       workspaceID,
		SelectedTimeRange: DefaultTimeRange,
		CounterValue:      DefaultCounterValue,
		OrderAccounts:     DefaultOrderAccounts,
		DismissedBanners:  map[string]bool{},
	}
}

// SettingsPatch carries a partial settings update; nil fields are left alone
type SettingsPatch struct {
	SelectedTimeRange *TimeRange
	CounterValue      *string
	OrderAccounts     *string
}

// IsEmpty reports whether the patch changes nothing
func (p SettingsPatch) IsEmpty() bool {
	return p.SelectedTimeRange == nil && p.CounterValue == nil && p.OrderAccounts == nil
}

// SettingsRepository persists settings and banner dismissals.
// Get returns ErrSettingsNotFound when the workspace never saved settings.
type SettingsRepository interface {
	Get(ctx context.Context, workspaceID int32) (*Settings, error)
	Save(ctx context.Context, settings *Settings) (*Settings, error)
	DismissBanner(ctx context.Context, workspaceID int32, bannerID string) error
}
