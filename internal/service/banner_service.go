package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/dafibh/fortuna/portfolio-backend/internal/portfolio"
	"github.com/dafibh/fortuna/portfolio-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// BannerDismissedPayload is pushed to clients when a banner is dismissed
type BannerDismissedPayload struct {
	BannerID string `json:"bannerId"`
}

// BannerIconPayload is pushed to every client when a banner icon changes
type BannerIconPayload struct {
	BannerID string `json:"bannerId"`
}

// BannerService resolves the banner catalog for a workspace and handles dismissals
type BannerService struct {
	bannerRepo     domain.BannerRepository
	settingsRepo   domain.SettingsRepository
	iconService    *IconService
	eventPublisher websocket.EventPublisher
}

// NewBannerService creates a new BannerService
func NewBannerService(bannerRepo domain.BannerRepository, settingsRepo domain.SettingsRepository, iconService *IconService) *BannerService {
	return &BannerService{
		bannerRepo:   bannerRepo,
		settingsRepo: settingsRepo,
		iconService:  iconService,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *BannerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *BannerService) publishEvent(workspaceID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

// List returns the active banners with dismissals applied and icon URLs resolved
func (s *BannerService) List(ctx context.Context, workspaceID int32, dismissed map[string]bool) ([]domain.Banner, error) {
	banners, err := s.bannerRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	banners = portfolio.ApplyDismissals(banners, dismissed)

	for i := range banners {
		path := banners[i].Content.IconPath
		if path == "" {
			continue
		}
		url, err := s.iconService.PresignedURL(ctx, path)
		if err != nil {
			// A missing icon must not hide the banner
			log.Warn().Err(err).Str("banner_id", banners[i].ID).Msg("Failed to presign banner icon")
			continue
		}
		banners[i].Content.IconURL = url
	}
	return banners, nil
}

// Dismiss hides a banner for the workspace. Dismissing twice is a no-op.
func (s *BannerService) Dismiss(ctx context.Context, workspaceID int32, bannerID string) error {
	banner, err := s.bannerRepo.GetByID(ctx, bannerID)
	if err != nil {
		return err
	}
	if !banner.Dismissable {
		return domain.ErrBannerNotDismissable
	}

	if err := s.settingsRepo.DismissBanner(ctx, workspaceID, bannerID); err != nil {
		return fmt.Errorf("failed to dismiss banner: %w", err)
	}

	s.publishEvent(workspaceID, websocket.BannerDismissed(BannerDismissedPayload{BannerID: bannerID}))
	return nil
}

// SetIcon replaces a banner's icon. The previous object is removed best effort.
func (s *BannerService) SetIcon(ctx context.Context, bannerID string, data []byte, filename string) (*domain.Banner, error) {
	if !s.iconService.IsEnabled() {
		return nil, ErrImageStorageNotConfigured
	}

	banner, err := s.bannerRepo.GetByID(ctx, bannerID)
	if err != nil {
		return nil, err
	}

	path, err := s.iconService.ProcessAndUpload(ctx, bannerID, data, filename)
	if err != nil {
		return nil, err
	}

	if err := s.bannerRepo.UpdateIconPath(ctx, bannerID, path); err != nil {
		_ = s.iconService.Delete(ctx, path)
		return nil, err
	}

	if old := banner.Content.IconPath; old != "" && old != path {
		if err := s.iconService.Delete(ctx, old); err != nil && !errors.Is(err, ErrImageStorageNotConfigured) {
			log.Warn().Err(err).Str("banner_id", bannerID).Str("path", old).Msg("Failed to delete previous banner icon")
		}
	}

	banner.Content.IconPath = path
	banner.Content.IconURL, err = s.iconService.PresignedURL(ctx, path)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		s.eventPublisher.PublishAll(websocket.BannerIconSet(BannerIconPayload{BannerID: bannerID}))
	}
	return banner, nil
}
