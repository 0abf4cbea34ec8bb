package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/dafibh/fortuna/portfolio-backend/internal/portfolio"
	"github.com/dafibh/fortuna/portfolio-backend/internal/websocket"
	"golang.org/x/text/currency"
)

// SettingsService reads and updates the dashboard preferences of a workspace
type SettingsService struct {
	settingsRepo   domain.SettingsRepository
	eventPublisher websocket.EventPublisher
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo domain.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *SettingsService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *SettingsService) publishEvent(workspaceID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

// Get returns the workspace settings, falling back to defaults when none were saved
func (s *SettingsService) Get(ctx context.Context, workspaceID int32) (*domain.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx, workspaceID)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return domain.DefaultSettings(workspaceID), nil
	}
	if err != nil {
		return nil, err
	}
	if settings.DismissedBanners == nil {
		settings.DismissedBanners = map[string]bool{}
	}
	return settings, nil
}

// Update validates and applies a partial update, then notifies connected clients
func (s *SettingsService) Update(ctx context.Context, workspaceID int32, patch domain.SettingsPatch) (*domain.Settings, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: no settings to update", domain.ErrInvalidInput)
	}

	current, err := s.Get(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if patch.SelectedTimeRange != nil {
		if !patch.SelectedTimeRange.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTimeRange, *patch.SelectedTimeRange)
		}
		current.SelectedTimeRange = *patch.SelectedTimeRange
	}
	if patch.CounterValue != nil {
		ticker, err := NormalizeCounterValue(*patch.CounterValue)
		if err != nil {
			return nil, err
		}
		current.CounterValue = ticker
	}
	if patch.OrderAccounts != nil {
		ordering, err := portfolio.ParseOrdering(*patch.OrderAccounts)
		if err != nil {
			return nil, err
		}
		current.OrderAccounts = ordering.String()
	}

	saved, err := s.settingsRepo.Save(ctx, current)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.SettingsUpdated(saved))
	return saved, nil
}

// ChangeSelectedTimeRange persists a new selected time range
func (s *SettingsService) ChangeSelectedTimeRange(ctx context.Context, workspaceID int32, key domain.TimeRange) (*domain.Settings, error) {
	return s.Update(ctx, workspaceID, domain.SettingsPatch{SelectedTimeRange: &key})
}

// NormalizeCounterValue validates an ISO 4217 currency code and returns it upper-cased
func NormalizeCounterValue(code string) (string, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCounterValue, code)
	}
	return unit.String(), nil
}
