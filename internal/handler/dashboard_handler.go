package handler

import (
	"errors"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/dafibh/fortuna/portfolio-backend/internal/middleware"
	"github.com/dafibh/fortuna/portfolio-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// TimezoneHeader carries the caller's IANA time zone
const TimezoneHeader = "X-Timezone"

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		now:              time.Now,
	}
}

// MetricsResponse represents the dashboard counters
type MetricsResponse struct {
	TotalAccounts   int `json:"totalAccounts"`
	TotalCurrencies int `json:"totalCurrencies"`
	TotalOperations int `json:"totalOperations"`
}

// CurrencyResponse represents a currency in API responses
type CurrencyResponse struct {
	ID     string `json:"id"`
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Units  int32  `json:"units"`
}

// BalancePointResponse represents one point of a balance chart
type BalancePointResponse struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// BalanceSummaryResponse represents the portfolio chart and its header
type BalanceSummaryResponse struct {
	CounterValue  string                 `json:"counterValue"`
	IsAvailable   bool                   `json:"isAvailable"`
	TotalBalance  string                 `json:"totalBalance"`
	RefBalance    string                 `json:"refBalance"`
	SinceBalance  string                 `json:"sinceBalance"`
	ChangePercent *string                `json:"changePercent"`
	History       []BalancePointResponse `json:"history"`
}

// AccountCardResponse represents one account card
type AccountCardResponse struct {
	ID                  string                 `json:"id"`
	Name                string                 `json:"name"`
	Path                string                 `json:"path"`
	Currency            CurrencyResponse       `json:"currency"`
	Balance             string                 `json:"balance"`
	CountervalueBalance string                 `json:"countervalueBalance"`
	CountervalueChange  string                 `json:"countervalueChange"`
	IsAvailable         bool                   `json:"isAvailable"`
	History             []BalancePointResponse `json:"history"`
}

// OperationResponse represents an account operation
type OperationResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
	Hash      string `json:"hash"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	Fee       string `json:"fee"`
	Date      string `json:"date"`
}

// RecentOperationResponse is an operation with its account for the activity list
type RecentOperationResponse struct {
	OperationResponse
	AccountName string           `json:"accountName"`
	AccountPath string           `json:"accountPath"`
	Currency    CurrencyResponse `json:"currency"`
}

// BannerResponse represents the visible banner
type BannerResponse struct {
	ID           string `json:"id"`
	Dismissable  bool   `json:"dismissable"`
	MessageKey   string `json:"messageKey"`
	Status       string `json:"status"`
	LinkLabelKey string `json:"linkLabelKey,omitempty"`
	LinkURL      string `json:"linkUrl,omitempty"`
	IconURL      string `json:"iconUrl,omitempty"`
}

// DashboardResponse represents the dashboard view model
type DashboardResponse struct {
	State              string                    `json:"state"`
	GreetingKey        string                    `json:"greetingKey,omitempty"`
	Metrics            MetricsResponse           `json:"metrics"`
	SelectedTimeRange  string                    `json:"selectedTimeRange"`
	DaysCount          int                       `json:"daysCount"`
	CounterValue       string                    `json:"counterValue"`
	Banner             *BannerResponse           `json:"banner"`
	ShowSeparator      bool                      `json:"showSeparator"`
	Summary            *BalanceSummaryResponse   `json:"summary,omitempty"`
	Accounts           []AccountCardResponse     `json:"accounts"`
	RecentOperations   []RecentOperationResponse `json:"recentOperations"`
	ShowRecentActivity bool                      `json:"showRecentActivity"`
	GeneratedAt        string                    `json:"generatedAt"`
}

// TimeRangeResponse represents a selectable time range
type TimeRangeResponse struct {
	Key  string `json:"key"`
	Days int    `json:"days"`
}

// GetDashboard godoc
// @Summary Get the dashboard
// @Description Build the portfolio dashboard view model for the current workspace
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param timeRange query string false "Time range override (day, week, month, year); not persisted"
// @Param tz query string false "IANA time zone of the caller for the greeting, e.g. Asia/Tokyo"
// @Param X-Timezone header string false "IANA time zone, used when tz is absent"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var override *domain.TimeRange
	if raw := c.QueryParam("timeRange"); raw != "" {
		tr, err := domain.ParseTimeRange(raw)
		if err != nil {
			return NewValidationError(c, "Invalid time range", []ValidationError{
				{Field: "timeRange", Message: "Must be one of: day, week, month, year"},
			})
		}
		override = &tr
	}

	loc, err := callerLocation(c)
	if err != nil {
		return NewValidationError(c, "Invalid time zone", []ValidationError{
			{Field: "tz", Message: "Must be an IANA time zone name"},
		})
	}

	dashboard, err := h.dashboardService.Build(c.Request().Context(), workspaceID, override, h.now().In(loc))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimeRange) {
			return NewValidationError(c, "Invalid time range", []ValidationError{
				{Field: "timeRange", Message: "Must be one of: day, week, month, year"},
			})
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to build dashboard")
		return NewInternalError(c, "Failed to build dashboard")
	}

	return c.JSON(http.StatusOK, toDashboardResponse(dashboard))
}

// GetTimeRanges godoc
// @Summary List time ranges
// @Description List the selectable chart time ranges in display order
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TimeRangeResponse
// @Router /dashboard/time-ranges [get]
func (h *DashboardHandler) GetTimeRanges(c echo.Context) error {
	ranges := domain.AllTimeRanges()
	response := make([]TimeRangeResponse, len(ranges))
	for i, tr := range ranges {
		response[i] = TimeRangeResponse{Key: string(tr), Days: tr.Days()}
	}
	return c.JSON(http.StatusOK, response)
}

// callerLocation resolves the tz query parameter, then the X-Timezone header.
// Neither set means UTC.
func callerLocation(c echo.Context) (*time.Location, error) {
	name := c.QueryParam("tz")
	if name == "" {
		name = c.Request().Header.Get(TimezoneHeader)
	}
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

func toCurrencyResponse(c domain.Currency) CurrencyResponse {
	return CurrencyResponse{ID: c.ID, Ticker: c.Ticker, Name: c.Name, Units: c.Units}
}

func toHistoryResponse(points []domain.BalancePoint) []BalancePointResponse {
	out := make([]BalancePointResponse, len(points))
	for i, p := range points {
		out[i] = BalancePointResponse{
			Date:  p.Date.Format("2006-01-02"),
			Value: p.Value.StringFixed(2),
		}
	}
	return out
}

func toOperationResponse(op domain.Operation, units int32) OperationResponse {
	return OperationResponse{
		ID:        op.ID,
		AccountID: op.AccountID,
		Hash:      op.Hash,
		Type:      string(op.Type),
		Value:     op.Value.StringFixed(units),
		Fee:       op.Fee.StringFixed(units),
		Date:      op.Date.UTC().Format(time.RFC3339),
	}
}

func toBannerResponse(b *domain.Banner) *BannerResponse {
	if b == nil {
		return nil
	}
	return &BannerResponse{
		ID:           b.ID,
		Dismissable:  b.Dismissable,
		MessageKey:   b.Content.MessageKey,
		Status:       string(b.Content.Status),
		LinkLabelKey: b.Content.LinkLabelKey,
		LinkURL:      b.Content.LinkURL,
		IconURL:      b.Content.IconURL,
	}
}

func toBalanceSummaryResponse(s *domain.BalanceSummary) *BalanceSummaryResponse {
	if s == nil {
		return nil
	}
	var pct *string
	if s.ChangePercent != nil {
		v := s.ChangePercent.StringFixed(2)
		pct = &v
	}
	return &BalanceSummaryResponse{
		CounterValue:  s.CounterValue,
		IsAvailable:   s.IsAvailable,
		TotalBalance:  s.TotalBalance.StringFixed(2),
		RefBalance:    s.RefBalance.StringFixed(2),
		SinceBalance:  s.SinceBalance.StringFixed(2),
		ChangePercent: pct,
		History:       toHistoryResponse(s.History),
	}
}

func toDashboardResponse(d *domain.Dashboard) DashboardResponse {
	accounts := make([]AccountCardResponse, len(d.Accounts))
	for i, card := range d.Accounts {
		accounts[i] = AccountCardResponse{
			ID:                  card.ID,
			Name:                card.Name,
			Path:                card.Path,
			Currency:            toCurrencyResponse(card.Currency),
			Balance:             card.Balance.StringFixed(card.Currency.Units),
			CountervalueBalance: card.CountervalueBalance.StringFixed(2),
			CountervalueChange:  card.CountervalueChange.StringFixed(2),
			IsAvailable:         card.IsAvailable,
			History:             toHistoryResponse(card.History),
		}
	}

	ops := make([]RecentOperationResponse, len(d.RecentOperations))
	for i, item := range d.RecentOperations {
		ops[i] = RecentOperationResponse{
			OperationResponse: toOperationResponse(item.Operation, item.Currency.Units),
			AccountName:       item.AccountName,
			AccountPath:       item.AccountPath,
			Currency:          toCurrencyResponse(item.Currency),
		}
	}

	return DashboardResponse{
		State:       string(d.State),
		GreetingKey: d.GreetingKey,
		Metrics: MetricsResponse{
			TotalAccounts:   d.Metrics.TotalAccounts,
			TotalCurrencies: d.Metrics.TotalCurrencies,
			TotalOperations: d.Metrics.TotalOperations,
		},
		SelectedTimeRange:  string(d.SelectedTimeRange),
		DaysCount:          d.DaysCount,
		CounterValue:       d.CounterValue,
		Banner:             toBannerResponse(d.Banner),
		ShowSeparator:      d.ShowSeparator,
		Summary:            toBalanceSummaryResponse(d.Summary),
		Accounts:           accounts,
		RecentOperations:   ops,
		ShowRecentActivity: d.ShowRecentActivity,
		GeneratedAt:        d.GeneratedAt.UTC().Format(time.RFC3339),
	}
}
