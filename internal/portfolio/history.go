package portfolio

import (
	"sort"
	"time"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

var hundred = decimal.NewFromInt(100)

// AccountHistory is the balance series of a single account
type AccountHistory struct {
	AccountID    string
	Native       []domain.BalancePoint
	Countervalue []domain.BalancePoint
	IsAvailable  bool
}

// WindowStart returns the first day of a window of days ending today (UTC)
func WindowStart(now time.Time, days int) time.Time {
	return now.UTC().Truncate(day).Add(-time.Duration(days) * day)
}

// NativeHistory rebuilds the end-of-day balances of an account over the last
// days days by walking its operations backwards from the current balance. The
// series has days+1 points, oldest first.
func NativeHistory(account *domain.Account, days int, now time.Time) []domain.BalancePoint {
	start := WindowStart(now, days)

	ops := make([]domain.Operation, len(account.Operations))
	copy(ops, account.Operations)
	sort.Slice(ops, func(i, j int) bool { return ops[i].Date.After(ops[j].Date) })

	points := make([]domain.BalancePoint, days+1)
	running := account.Balance
	j := 0
	for i := days; i >= 0; i-- {
		date := start.Add(time.Duration(i) * day)
		endOfDay := date.Add(day)
		for j < len(ops) && !ops[j].Date.Before(endOfDay) {
			running = running.Sub(ops[j].Delta())
			j++
		}
		points[i] = domain.BalancePoint{Date: date, Value: running}
	}
	return points
}

// BalanceHistory converts every account history into the counter value and
// sums them into the portfolio chart. Accounts without any usable rate count
// as zero and flag the summary as unavailable.
func BalanceHistory(accounts []*domain.Account, rates *RateTable, counterValue string, days int, now time.Time) (*domain.BalanceSummary, []AccountHistory) {
	total := make([]domain.BalancePoint, days+1)
	start := WindowStart(now, days)
	for i := range total {
		total[i] = domain.BalancePoint{Date: start.Add(time.Duration(i) * day), Value: decimal.Zero}
	}

	available := true
	histories := make([]AccountHistory, 0, len(accounts))
	for _, a := range accounts {
		native := NativeHistory(a, days, now)
		converted := make([]domain.BalancePoint, len(native))
		accountAvailable := true

		for i, p := range native {
			rate, ok := rates.RateAt(a.Currency.Ticker, p.Date)
			if !ok {
				accountAvailable = false
				converted[i] = domain.BalancePoint{Date: p.Date, Value: decimal.Zero}
				continue
			}
			value := p.Value.Mul(rate)
			converted[i] = domain.BalancePoint{Date: p.Date, Value: value}
			total[i].Value = total[i].Value.Add(value)
		}

		if !accountAvailable {
			available = false
		}
		histories = append(histories, AccountHistory{
			AccountID:    a.ID,
			Native:       native,
			Countervalue: converted,
			IsAvailable:  accountAvailable,
		})
	}

	return summarize(total, counterValue, available), histories
}

func summarize(history []domain.BalancePoint, counterValue string, available bool) *domain.BalanceSummary {
	ref := history[0].Value
	last := history[len(history)-1].Value
	since := last.Sub(ref)

	summary := &domain.BalanceSummary{
		CounterValue: counterValue,
		IsAvailable:  available,
		TotalBalance: last,
		RefBalance:   ref,
		SinceBalance: since,
		History:      history,
	}
	if !ref.IsZero() {
		pct := since.Div(ref).Mul(hundred).Round(2)
		summary.ChangePercent = &pct
	}
	return summary
}
