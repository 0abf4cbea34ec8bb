package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardState tells clients which branch of the dashboard to render
type DashboardState string

const (
	// DashboardStateLoading is returned while the workspace never finished a sync
	DashboardStateLoading DashboardState = "loading"
	// DashboardStateEmpty is returned when a synced workspace has no accounts
	DashboardStateEmpty DashboardState = "empty"
	// DashboardStateSummary is returned when there is at least one account
	DashboardStateSummary DashboardState = "summary"
)

// DashboardPageCategory is the page-view category recorded for dashboard builds
const DashboardPageCategory = "Portfolio"

// DefaultRecentOperationsLimit bounds the recent activity list
const DefaultRecentOperationsLimit = 20

// Metrics are the aggregate counts shown in the dashboard header
type Metrics struct {
	TotalAccounts   int `json:"totalAccounts"`
	TotalCurrencies int `json:"totalCurrencies"`
	TotalOperations int `json:"totalOperations"`
}

// BalancePoint is one day of a balance chart
type BalancePoint struct {
	Date  time.Time
	Value decimal.Decimal
}

// BalanceSummary is the portfolio chart and its header figures, expressed in
// the counter value currency
type BalanceSummary struct {
	CounterValue  string
	IsAvailable   bool
	TotalBalance  decimal.Decimal
	RefBalance    decimal.Decimal
	SinceBalance  decimal.Decimal
	ChangePercent *decimal.Decimal
	History       []BalancePoint
}

// AccountCard is one entry of the account card list
type AccountCard struct {
	ID                  string
	Name                string
	Path                string
	Currency            Currency
	Balance             decimal.Decimal
	CountervalueBalance decimal.Decimal
	CountervalueChange  decimal.Decimal
	IsAvailable         bool
	History             []BalancePoint
}

// OperationItem is an operation decorated with its account for the recent
// activity list
type OperationItem struct {
	Operation
	AccountName string
	AccountPath string
	Currency    Currency
}

// Dashboard is the full view model of the dashboard screen
type Dashboard struct {
	State              DashboardState
	GreetingKey        string
	Metrics            Metrics
	SelectedTimeRange  TimeRange
	DaysCount          int
	CounterValue       string
	Banner             *Banner
	ShowSeparator      bool
	Summary            *BalanceSummary
	Accounts           []AccountCard
	RecentOperations   []OperationItem
	ShowRecentActivity bool
	GeneratedAt        time.Time
}
