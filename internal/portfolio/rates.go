package portfolio

import (
	"sort"
	"time"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// RateTable answers "what was the rate of X in the counter value on day d"
// from a flat list of daily rates
type RateTable struct {
	to    string
	rates map[string][]domain.CountervalueRate
}

// NewRateTable indexes rates quoted in the to currency. Rates quoted in any
// other currency are ignored.
func NewRateTable(to string, rates []domain.CountervalueRate) *RateTable {
	t := &RateTable{
		to:    to,
		rates: make(map[string][]domain.CountervalueRate),
	}
	for _, r := range rates {
		if r.To != to {
			continue
		}
		t.rates[r.From] = append(t.rates[r.From], r)
	}
	for from := range t.rates {
		list := t.rates[from]
		sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	}
	return t
}

// RateAt returns the latest rate dated on or before day. A ticker quoted in
// itself always has rate 1.
func (t *RateTable) RateAt(from string, day time.Time) (decimal.Decimal, bool) {
	if from == t.to {
		return decimal.NewFromInt(1), true
	}

	list := t.rates[from]
	// first index strictly after day
	i := sort.Search(len(list), func(i int) bool { return list[i].Date.After(day) })
	if i == 0 {
		return decimal.Zero, false
	}
	return list[i-1].Rate, true
}
