package tui

import (
	"fmt"
	"strings"

	"github.com/dafibh/fortuna/portfolio-backend/internal/handler"
)

const (
	stateSummary = "summary"
	stateLoading = "loading"
)

var bannerColors = map[string]string{
	"dark":  "white",
	"info":  "deepskyblue",
	"alert": "orangered",
}

var rangeLabels = map[string]string{
	"day":   "timeRange.day",
	"week":  "timeRange.week",
	"month": "timeRange.month",
	"year":  "timeRange.year",
}

// BannerLine renders the visible banner, or a separator rule when the
// dashboard has none
func BannerLine(b *handler.BannerResponse, tr Translations, width int) string {
	if b == nil {
		if width < 1 {
			width = 1
		}
		return "[gray]" + strings.Repeat("─", width) + "[-]"
	}

	color, ok := bannerColors[b.Status]
	if !ok {
		color = "white"
	}

	line := fmt.Sprintf("[%s]%s[-]", color, tr.T(b.MessageKey))
	if b.LinkLabelKey != "" {
		line += fmt.Sprintf(" [::u]%s[::-]", tr.T(b.LinkLabelKey))
		if b.LinkURL != "" {
			line += " " + b.LinkURL
		}
	}
	if b.Dismissable {
		line += " [gray](x)[-]"
	}
	return line
}

// HeaderLines renders the greeting and the metrics line for the summary
// state, or the loading/empty placeholder otherwise
func HeaderLines(d *handler.DashboardResponse, tr Translations) string {
	switch d.State {
	case stateSummary:
		summary := fmt.Sprintf(tr.T("dashboard.summary"),
			d.Metrics.TotalAccounts, d.Metrics.TotalCurrencies, d.Metrics.TotalOperations)
		return fmt.Sprintf("[::b]%s[::-]\n%s", tr.T(d.GreetingKey), summary)
	case stateLoading:
		return tr.T("dashboard.loading")
	default:
		return tr.T("dashboard.empty")
	}
}

// RangePills renders the time range selector with the selected key
// highlighted. Each pill is prefixed with its number key.
func RangePills(ranges []handler.TimeRangeResponse, selected string, tr Translations) string {
	pills := make([]string, len(ranges))
	for i, r := range ranges {
		label := r.Key
		if key, ok := rangeLabels[r.Key]; ok {
			label = tr.T(key)
		}
		if r.Key == selected {
			pills[i] = fmt.Sprintf("[black:white] %d %s [-:-]", i+1, label)
		} else {
			pills[i] = fmt.Sprintf(" %d %s ", i+1, label)
		}
	}
	return strings.Join(pills, " ")
}

// BalanceLines renders the portfolio total, its change over the window and
// a sparkline of the history
func BalanceLines(s *handler.BalanceSummaryResponse, f *Formatter, tr Translations, width int) string {
	if s == nil {
		return ""
	}
	if !s.IsAvailable {
		return "[gray]" + tr.T("dashboard.unavailable") + "[-]"
	}

	color := "green"
	if strings.HasPrefix(s.SinceBalance, "-") {
		color = "red"
	}

	values := make([]string, len(s.History))
	for i, p := range s.History {
		values[i] = p.Value
	}

	return fmt.Sprintf("[::b]%s[::-]  [%s]%s (%s)[-]\n%s",
		f.Fiat(s.TotalBalance, s.CounterValue),
		color, f.Signed(s.SinceBalance, s.CounterValue), Percent(s.ChangePercent),
		Sparkline(values, width))
}

// AccountCells returns the table cells of one account row
func AccountCells(a handler.AccountCardResponse, counterValue string, f *Formatter) []string {
	cv := "-"
	if a.IsAvailable {
		cv = f.Fiat(a.CountervalueBalance, counterValue)
	}
	values := make([]string, len(a.History))
	for i, p := range a.History {
		values[i] = p.Value
	}
	return []string{
		a.Name,
		f.Crypto(a.Balance, a.Currency.Ticker, a.Currency.Units),
		cv,
		Sparkline(values, 16),
	}
}

// OperationLine renders one entry of the recent activity list
func OperationLine(op handler.RecentOperationResponse, f *Formatter) string {
	sign, color := "+", "green"
	if op.Type != "IN" {
		sign, color = "-", "red"
	}
	date := op.Date
	if len(date) >= 10 {
		date = date[:10]
	}
	return fmt.Sprintf("%s  %-4s [%s]%s%s[-]  %s",
		date, op.Type, color, sign,
		f.Crypto(op.Value, op.Currency.Ticker, op.Currency.Units), op.AccountName)
}

// AccountDetail renders the account page reached through a card's path
func AccountDetail(a *handler.AccountResponse, f *Formatter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]%s[::-]  [gray]%s[-]\n", a.Name, a.Path)
	fmt.Fprintf(&b, "%s\n\n", f.Crypto(a.Balance, a.Currency.Ticker, a.Currency.Units))
	for _, op := range a.Operations {
		fmt.Fprintln(&b, OperationLine(handler.RecentOperationResponse{
			OperationResponse: op,
			AccountName:       op.Hash,
			Currency:          a.Currency,
		}, f))
	}
	return b.String()
}
