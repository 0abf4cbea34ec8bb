package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/dafibh/fortuna/portfolio-backend/internal/portfolio"
	"github.com/rs/zerolog/log"
)

// DashboardService assembles the dashboard view model of a workspace
type DashboardService struct {
	accountRepo           domain.AccountRepository
	workspaceRepo         domain.WorkspaceRepository
	countervalueRepo      domain.CountervalueRepository
	settingsService       *SettingsService
	bannerService         *BannerService
	tracker               PageTracker
	recentOperationsLimit int
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	accountRepo domain.AccountRepository,
	workspaceRepo domain.WorkspaceRepository,
	countervalueRepo domain.CountervalueRepository,
	settingsService *SettingsService,
	bannerService *BannerService,
) *DashboardService {
	return &DashboardService{
		accountRepo:           accountRepo,
		workspaceRepo:         workspaceRepo,
		countervalueRepo:      countervalueRepo,
		settingsService:       settingsService,
		bannerService:         bannerService,
		tracker:               NoOpPageTracker{},
		recentOperationsLimit: domain.DefaultRecentOperationsLimit,
	}
}

// SetPageTracker sets the analytics tracker notified on every build
func (s *DashboardService) SetPageTracker(tracker PageTracker) {
	if tracker == nil {
		tracker = NoOpPageTracker{}
	}
	s.tracker = tracker
}

// SetRecentOperationsLimit bounds the recent activity list
func (s *DashboardService) SetRecentOperationsLimit(limit int) {
	if limit > 0 {
		s.recentOperationsLimit = limit
	}
}

// Build computes the dashboard for a workspace at now. A non-nil override
// replaces the saved time range for this build only.
func (s *DashboardService) Build(ctx context.Context, workspaceID int32, override *domain.TimeRange, now time.Time) (*domain.Dashboard, error) {
	settings, err := s.settingsService.Get(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	timeRange := settings.SelectedTimeRange
	if override != nil {
		if !override.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTimeRange, *override)
		}
		timeRange = *override
	}
	if !timeRange.IsValid() {
		timeRange = domain.DefaultTimeRange
	}

	accounts, err := s.accountRepo.GetAllByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	banners, err := s.bannerService.List(ctx, workspaceID, settings.DismissedBanners)
	if err != nil {
		return nil, fmt.Errorf("failed to load banners: %w", err)
	}
	banner, hasBanner := portfolio.SelectBanner(banners)

	dashboard := &domain.Dashboard{
		Metrics:           portfolio.ComputeMetrics(accounts),
		SelectedTimeRange: timeRange,
		DaysCount:         timeRange.Days(),
		CounterValue:      settings.CounterValue,
		Banner:            banner,
		ShowSeparator:     !hasBanner,
		Accounts:          []domain.AccountCard{},
		RecentOperations:  []domain.OperationItem{},
		GeneratedAt:       now,
	}

	if dashboard.Metrics.TotalAccounts == 0 {
		workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
		if err != nil {
			return nil, err
		}
		dashboard.State = domain.DashboardStateEmpty
		if !workspace.HasSynced() {
			dashboard.State = domain.DashboardStateLoading
		}
		s.tracker.TrackPage(ctx, domain.DashboardPageCategory, workspaceID, dashboard.Metrics)
		return dashboard, nil
	}

	if err := s.fillSummary(ctx, dashboard, accounts, settings, now); err != nil {
		return nil, err
	}

	s.tracker.TrackPage(ctx, domain.DashboardPageCategory, workspaceID, dashboard.Metrics)
	return dashboard, nil
}

func (s *DashboardService) fillSummary(ctx context.Context, d *domain.Dashboard, accounts []*domain.Account, settings *domain.Settings, now time.Time) error {
	d.State = domain.DashboardStateSummary
	d.GreetingKey = portfolio.GreetingKey(now)

	tickers := uniqueTickers(accounts, settings.CounterValue)
	var rates []domain.CountervalueRate
	if len(tickers) > 0 {
		var err error
		rates, err = s.countervalueRepo.GetRates(ctx, tickers, settings.CounterValue, portfolio.WindowStart(now, d.DaysCount))
		if err != nil {
			return fmt.Errorf("failed to load countervalues: %w", err)
		}
	}

	summary, histories := portfolio.BalanceHistory(accounts, portfolio.NewRateTable(settings.CounterValue, rates), settings.CounterValue, d.DaysCount, now)
	d.Summary = summary

	ordering, err := portfolio.ParseOrdering(settings.OrderAccounts)
	if err != nil {
		log.Warn().Err(err).Int32("workspace_id", settings.WorkspaceID).Msg("Stored account ordering is invalid, using default")
		ordering, _ = portfolio.ParseOrdering(domain.DefaultOrderAccounts)
	}
	indexByID := make(map[string]int, len(accounts))
	for _, a := range accounts {
		indexByID[a.ID] = a.Index
	}
	cards := portfolio.BuildAccountCards(accounts, histories)
	portfolio.SortAccountCards(cards, indexByID, ordering)
	d.Accounts = cards

	d.RecentOperations = portfolio.RecentOperations(accounts, s.recentOperationsLimit)
	d.ShowRecentActivity = d.Metrics.TotalOperations > 0
	return nil
}

func uniqueTickers(accounts []*domain.Account, counterValue string) []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, a := range accounts {
		t := a.Currency.Ticker
		if t == counterValue || seen[t] {
			continue
		}
		seen[t] = true
		tickers = append(tickers, t)
	}
	return tickers
}
