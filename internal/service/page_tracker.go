package service

import (
	"context"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
)

// PageTracker records page views for analytics along with the dashboard counts
type PageTracker interface {
	TrackPage(ctx context.Context, category string, workspaceID int32, metrics domain.Metrics)
}

// NoOpPageTracker discards page views
type NoOpPageTracker struct{}

// TrackPage does nothing
func (NoOpPageTracker) TrackPage(ctx context.Context, category string, workspaceID int32, metrics domain.Metrics) {}
