package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CountervalueRepository implements domain.CountervalueRepository using PostgreSQL
type CountervalueRepository struct {
	pool *pgxpool.Pool
}

// NewCountervalueRepository creates a new CountervalueRepository
func NewCountervalueRepository(pool *pgxpool.Pool) *CountervalueRepository {
	return &CountervalueRepository{pool: pool}
}

// GetRates returns the rates dated since the given day plus, per ticker, the
// latest rate before it so the first day of a window can be converted.
func (r *CountervalueRepository) GetRates(ctx context.Context, fromTickers []string, to string, since time.Time) ([]domain.CountervalueRate, error) {
	if len(fromTickers) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		(
			SELECT from_ticker, to_ticker, date, rate
			FROM countervalue_rates
			WHERE from_ticker = ANY($1) AND to_ticker = $2 AND date >= $3
		)
		UNION ALL
		(
			SELECT DISTINCT ON (from_ticker) from_ticker, to_ticker, date, rate
			FROM countervalue_rates
			WHERE from_ticker = ANY($1) AND to_ticker = $2 AND date < $3
			ORDER BY from_ticker, date DESC
		)
	`, fromTickers, to, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.CountervalueRate
	for rows.Next() {
		var rate domain.CountervalueRate
		var value pgtype.Numeric
		if err := rows.Scan(&rate.From, &rate.To, &rate.Date, &value); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		rate.Rate = pgNumericToDecimal(value)
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get rates: %w", err)
	}
	return rates, nil
}
