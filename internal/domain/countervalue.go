package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CountervalueRate is the daily close price of one unit of From expressed in To
type CountervalueRate struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Date time.Time       `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

// CountervalueRepository reads historical rates
type CountervalueRepository interface {
	GetRates(ctx context.Context, fromTickers []string, to string, since time.Time) ([]CountervalueRate, error)
}
