package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dafibh/fortuna/portfolio-backend/internal/handler"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	dashboard    *handler.DashboardResponse
	dashboardErr error
	ranges       []handler.TimeRangeResponse
	rangesErr    error
	accounts     map[string]*handler.AccountResponse

	selected  []string
	dismissed []string
}

func (f *fakeAPI) Dashboard(_ context.Context, _ string) (*handler.DashboardResponse, error) {
	if f.dashboardErr != nil {
		return nil, f.dashboardErr
	}
	return f.dashboard, nil
}

func (f *fakeAPI) TimeRanges(_ context.Context) ([]handler.TimeRangeResponse, error) {
	return f.ranges, f.rangesErr
}

func (f *fakeAPI) SelectTimeRange(_ context.Context, key string) error {
	f.selected = append(f.selected, key)
	f.dashboard.SelectedTimeRange = key
	return nil
}

func (f *fakeAPI) DismissBanner(_ context.Context, bannerID string) error {
	f.dismissed = append(f.dismissed, bannerID)
	f.dashboard.Banner = nil
	f.dashboard.ShowSeparator = true
	return nil
}

func (f *fakeAPI) Account(_ context.Context, id string) (*handler.AccountResponse, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return a, nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		dashboard: &handler.DashboardResponse{
			State:             "summary",
			GreetingKey:       "dashboard.greeting.morning",
			Metrics:           handler.MetricsResponse{TotalAccounts: 2, TotalCurrencies: 2, TotalOperations: 1},
			SelectedTimeRange: "month",
			CounterValue:      "USD",
			Banner: &handler.BannerResponse{
				ID: "promoNanoX", Dismissable: true, MessageKey: "banners.promoteMobile", Status: "dark",
			},
			Accounts: []handler.AccountCardResponse{
				{ID: "a1", Name: "Savings", Path: "/account/a1", Currency: handler.CurrencyResponse{Ticker: "BTC", Units: 8}, Balance: "1.00000000"},
				{ID: "a2", Name: "Trading", Path: "/account/a2", Currency: handler.CurrencyResponse{Ticker: "ETH", Units: 8}, Balance: "2.00000000"},
			},
			ShowRecentActivity: true,
			RecentOperations: []handler.RecentOperationResponse{{
				OperationResponse: handler.OperationResponse{Type: "IN", Value: "1", Date: "2025-03-09T00:00:00Z"},
				AccountName:       "Savings",
				Currency:          handler.CurrencyResponse{Ticker: "BTC", Units: 8},
			}},
		},
		ranges: fallbackRanges,
		accounts: map[string]*handler.AccountResponse{
			"a2": {ID: "a2", Name: "Trading", Path: "/account/a2", Currency: handler.CurrencyResponse{Ticker: "ETH", Units: 8}, Balance: "2"},
		},
	}
}

func newTestApp(t *testing.T, api API) *App {
	t.Helper()
	return NewApp(api, testTranslations(t), NewFormatter("en-US"), zerolog.Nop())
}

// runOp runs a background operation synchronously and applies it
func runOp(t *testing.T, op func(context.Context) (func(), error)) {
	t.Helper()
	apply, err := op(context.Background())
	require.NoError(t, err)
	apply()
}

func TestApp_Load(t *testing.T) {
	api := newFakeAPI()
	a := newTestApp(t, api)

	require.NoError(t, a.Load(context.Background()))

	assert.Contains(t, a.header.GetText(false), "Good morning")
	assert.Contains(t, a.banner.GetText(false), "Take your crypto")
	assert.Equal(t, 2, a.accounts.GetRowCount())
	assert.Equal(t, "Savings", a.accounts.GetCell(0, 0).Text)
	assert.Contains(t, a.activity.GetText(false), "Savings")
}

func TestApp_Load_Error(t *testing.T) {
	api := newFakeAPI()
	api.dashboardErr = errors.New("boom")
	a := newTestApp(t, api)

	err := a.Load(context.Background())
	assert.ErrorContains(t, err, "boom")
	assert.Nil(t, a.dashboard)
}

func TestApp_Load_TimeRangesFallback(t *testing.T) {
	api := newFakeAPI()
	api.ranges = nil
	api.rangesErr = errors.New("unavailable")
	a := newTestApp(t, api)

	require.NoError(t, a.Load(context.Background()))
	assert.Equal(t, fallbackRanges, a.timeRanges)
}

func TestApp_SelectRange(t *testing.T) {
	api := newFakeAPI()
	a := newTestApp(t, api)
	require.NoError(t, a.Load(context.Background()))

	runOp(t, a.selectRange(1))

	assert.Equal(t, []string{"week"}, api.selected)
	assert.Equal(t, "week", a.dashboard.SelectedTimeRange)
	assert.Contains(t, a.ranges.GetText(false), "2 1W")
}

func TestApp_SelectRange_OutOfBounds(t *testing.T) {
	api := newFakeAPI()
	a := newTestApp(t, api)
	require.NoError(t, a.Load(context.Background()))

	runOp(t, a.selectRange(8))

	assert.Empty(t, api.selected)
}

func TestApp_DismissBanner(t *testing.T) {
	api := newFakeAPI()
	a := newTestApp(t, api)
	require.NoError(t, a.Load(context.Background()))

	runOp(t, a.dismissBanner())

	assert.Equal(t, []string{"promoNanoX"}, api.dismissed)
	assert.True(t, strings.Contains(a.banner.GetText(false), "─"))
}

func TestApp_DismissBanner_NotDismissable(t *testing.T) {
	api := newFakeAPI()
	api.dashboard.Banner.Dismissable = false
	a := newTestApp(t, api)
	require.NoError(t, a.Load(context.Background()))

	runOp(t, a.dismissBanner())

	assert.Empty(t, api.dismissed)
}

func TestApp_FilterAccounts(t *testing.T) {
	api := newFakeAPI()
	a := newTestApp(t, api)
	require.NoError(t, a.Load(context.Background()))

	a.setQuery("trad")

	assert.Equal(t, 1, a.accounts.GetRowCount())
	assert.Equal(t, "a2", a.visible[0].ID)

	a.setQuery("")
	assert.Equal(t, 2, a.accounts.GetRowCount())
}

func TestApp_ShowAccount(t *testing.T) {
	api := newFakeAPI()
	a := newTestApp(t, api)

	a.showAccount(api.accounts["a2"])

	name, _ := a.pages.GetFrontPage()
	assert.Equal(t, pageAccount, name)
	assert.Contains(t, a.detail.GetText(false), "/account/a2")
}
