package tui

import (
	"strings"
	"testing"

	"github.com/dafibh/fortuna/portfolio-backend/internal/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTranslations(t *testing.T) Translations {
	t.Helper()
	tr, err := LoadTranslations("en-US")
	require.NoError(t, err)
	return tr
}

func TestBannerLine(t *testing.T) {
	tr := testTranslations(t)

	t.Run("separator without banner", func(t *testing.T) {
		assert.Equal(t, "[gray]────[-]", BannerLine(nil, tr, 4))
	})

	t.Run("dismissable banner with link", func(t *testing.T) {
		line := BannerLine(&handler.BannerResponse{
			ID:           "promoNanoX",
			Dismissable:  true,
			MessageKey:   "banners.promoteMobile",
			Status:       "dark",
			LinkLabelKey: "common.learnMore",
			LinkURL:      "https://example.com/app",
		}, tr, 40)

		assert.True(t, strings.HasPrefix(line, "[white]Take your crypto"))
		assert.Contains(t, line, "[::u]Learn more[::-] https://example.com/app")
		assert.Contains(t, line, "(x)")
	})

	t.Run("alert without link", func(t *testing.T) {
		line := BannerLine(&handler.BannerResponse{MessageKey: "banners.maintenance", Status: "alert"}, tr, 40)
		assert.Equal(t, "[orangered]Scheduled maintenance is in progress.[-]", line)
	})
}

func TestHeaderLines(t *testing.T) {
	tr := testTranslations(t)

	tests := []struct {
		name string
		d    handler.DashboardResponse
		want string
	}{
		{
			name: "summary",
			d: handler.DashboardResponse{
				State:       "summary",
				GreetingKey: "dashboard.greeting.afternoon",
				Metrics:     handler.MetricsResponse{TotalAccounts: 2, TotalCurrencies: 2, TotalOperations: 3},
			},
			want: "[::b]Good afternoon[::-]\n2 accounts, 2 currencies, 3 operations",
		},
		{name: "loading", d: handler.DashboardResponse{State: "loading"}, want: "Syncing your accounts..."},
		{name: "empty", d: handler.DashboardResponse{State: "empty"}, want: "No accounts yet. Add one to get started."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HeaderLines(&tt.d, tr))
		})
	}
}

func TestRangePills(t *testing.T) {
	tr := testTranslations(t)
	ranges := []handler.TimeRangeResponse{{Key: "day", Days: 1}, {Key: "week", Days: 7}}

	assert.Equal(t, "[black:white] 1 1D [-:-]  2 1W ", RangePills(ranges, "day", tr))
}

func TestBalanceLines(t *testing.T) {
	tr := testTranslations(t)
	f := NewFormatter("en-US")
	pct := "61.54"

	t.Run("available", func(t *testing.T) {
		got := BalanceLines(&handler.BalanceSummaryResponse{
			CounterValue:  "USD",
			IsAvailable:   true,
			TotalBalance:  "1050.00",
			SinceBalance:  "400.00",
			ChangePercent: &pct,
			History:       []handler.BalancePointResponse{{Value: "650.00"}, {Value: "1050.00"}},
		}, f, tr, 20)

		assert.Equal(t, "[::b]1,050.00 USD[::-]  [green]+400.00 USD (+61.54%)[-]\n▁█", got)
	})

	t.Run("unavailable", func(t *testing.T) {
		got := BalanceLines(&handler.BalanceSummaryResponse{IsAvailable: false}, f, tr, 20)
		assert.Equal(t, "[gray]Countervalues unavailable[-]", got)
	})

	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, BalanceLines(nil, f, tr, 20))
	})
}

func TestAccountCells(t *testing.T) {
	f := NewFormatter("en-US")
	card := handler.AccountCardResponse{
		Name:                "Savings",
		Currency:            handler.CurrencyResponse{Ticker: "BTC", Units: 8},
		Balance:             "1.50000000",
		CountervalueBalance: "150.00",
		IsAvailable:         true,
	}

	cells := AccountCells(card, "USD", f)
	assert.Equal(t, []string{"Savings", "1.50000000 BTC", "150.00 USD", ""}, cells)

	card.IsAvailable = false
	assert.Equal(t, "-", AccountCells(card, "USD", f)[2])
}

func TestOperationLine(t *testing.T) {
	f := NewFormatter("en-US")
	op := handler.RecentOperationResponse{
		OperationResponse: handler.OperationResponse{Type: "OUT", Value: "0.5", Date: "2025-03-09T12:00:00Z"},
		AccountName:       "Savings",
		Currency:          handler.CurrencyResponse{Ticker: "BTC", Units: 8},
	}

	assert.Equal(t, "2025-03-09  OUT  [red]-0.50000000 BTC[-]  Savings", OperationLine(op, f))
}

func TestAccountDetail(t *testing.T) {
	f := NewFormatter("en-US")
	got := AccountDetail(&handler.AccountResponse{
		Name:     "Savings",
		Path:     "/account/a1",
		Currency: handler.CurrencyResponse{Ticker: "BTC", Units: 8},
		Balance:  "1.00000000",
		Operations: []handler.OperationResponse{
			{Hash: "0xabc", Type: "IN", Value: "1", Date: "2025-03-01T00:00:00Z"},
		},
	}, f)

	assert.Contains(t, got, "[::b]Savings[::-]  [gray]/account/a1[-]")
	assert.Contains(t, got, "1.00000000 BTC")
	assert.Contains(t, got, "2025-03-01  IN   [green]+1.00000000 BTC[-]  0xabc")
}
