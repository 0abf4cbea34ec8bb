package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/dafibh/fortuna/portfolio-backend/internal/testutil"
	"github.com/dafibh/fortuna/portfolio-backend/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func timeRangePtr(r domain.TimeRange) *domain.TimeRange { return &r }

func TestSettingsService_Get_DefaultsWhenMissing(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	svc := NewSettingsService(repo)

	settings, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, domain.TimeRangeMonth, settings.SelectedTimeRange)
	assert.Equal(t, "USD", settings.CounterValue)
	assert.Equal(t, "balance|desc", settings.OrderAccounts)
	assert.NotNil(t, settings.DismissedBanners)
}

func TestSettingsService_Get_RepositoryError(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	repo.GetErr = errors.New("connection refused")
	svc := NewSettingsService(repo)

	_, err := svc.Get(context.Background(), 1)
	assert.Error(t, err)
}

func TestSettingsService_Update(t *testing.T) {
	tests := []struct {
		name    string
		patch   domain.SettingsPatch
		wantErr error
		check   func(t *testing.T, s *domain.Settings)
	}{
		{
			name:  "time range",
			patch: domain.SettingsPatch{SelectedTimeRange: timeRangePtr(domain.TimeRangeWeek)},
			check: func(t *testing.T, s *domain.Settings) {
				assert.Equal(t, domain.TimeRangeWeek, s.SelectedTimeRange)
				assert.Equal(t, "USD", s.CounterValue)
			},
		},
		{
			name:  "counter value is normalized",
			patch: domain.SettingsPatch{CounterValue: strPtr(" eur ")},
			check: func(t *testing.T, s *domain.Settings) {
				assert.Equal(t, "EUR", s.CounterValue)
			},
		},
		{
			name:  "ordering",
			patch: domain.SettingsPatch{OrderAccounts: strPtr("name|asc")},
			check: func(t *testing.T, s *domain.Settings) {
				assert.Equal(t, "name|asc", s.OrderAccounts)
			},
		},
		{
			name:    "unknown time range",
			patch:   domain.SettingsPatch{SelectedTimeRange: timeRangePtr("decade")},
			wantErr: domain.ErrInvalidTimeRange,
		},
		{
			name:    "unknown currency",
			patch:   domain.SettingsPatch{CounterValue: strPtr("DOGE")},
			wantErr: domain.ErrInvalidCounterValue,
		},
		{
			name:    "unknown ordering",
			patch:   domain.SettingsPatch{OrderAccounts: strPtr("balance|sideways")},
			wantErr: domain.ErrInvalidOrdering,
		},
		{
			name:    "empty patch",
			patch:   domain.SettingsPatch{},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockSettingsRepository()
			publisher := testutil.NewMockEventPublisher()
			svc := NewSettingsService(repo)
			svc.SetEventPublisher(publisher)

			settings, err := svc.Update(context.Background(), 1, tt.patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, repo.Saves)
				assert.Empty(t, publisher.Published())
				return
			}

			require.NoError(t, err)
			tt.check(t, settings)
			assert.Equal(t, 1, repo.Saves)

			events := publisher.Published()
			require.Len(t, events, 1)
			assert.Equal(t, int32(1), events[0].WorkspaceID)
			assert.Equal(t, websocket.EntityTypeSettings, events[0].Event.Entity)
			assert.Equal(t, "settings.updated", events[0].Event.Type)
		})
	}
}

func TestSettingsService_ChangeSelectedTimeRange_KeepsOtherFields(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	repo.AddSettings(&domain.Settings{
		WorkspaceID:       1,
		SelectedTimeRange: domain.TimeRangeDay,
		CounterValue:      "EUR",
		OrderAccounts:     "name|asc",
		DismissedBanners:  map[string]bool{"promoNanoX": true},
	})
	svc := NewSettingsService(repo)

	settings, err := svc.ChangeSelectedTimeRange(context.Background(), 1, domain.TimeRangeYear)
	require.NoError(t, err)

	assert.Equal(t, domain.TimeRangeYear, settings.SelectedTimeRange)
	assert.Equal(t, "EUR", settings.CounterValue)
	assert.Equal(t, "name|asc", settings.OrderAccounts)
	assert.True(t, settings.DismissedBanners["promoNanoX"])
}

func TestSettingsService_Update_SaveError(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	repo.SaveErr = errors.New("disk full")
	publisher := testutil.NewMockEventPublisher()
	svc := NewSettingsService(repo)
	svc.SetEventPublisher(publisher)

	_, err := svc.ChangeSelectedTimeRange(context.Background(), 1, domain.TimeRangeWeek)
	assert.Error(t, err)
	assert.Empty(t, publisher.Published())
}
