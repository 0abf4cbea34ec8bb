package portfolio

import "github.com/dafibh/fortuna/portfolio-backend/internal/domain"

// ComputeMetrics counts accounts, distinct currencies and operations
func ComputeMetrics(accounts []*domain.Account) domain.Metrics {
	currencies := make(map[string]struct{}, len(accounts))
	operations := 0
	for _, a := range accounts {
		currencies[a.Currency.ID] = struct{}{}
		operations += len(a.Operations)
	}

	return domain.Metrics{
		TotalAccounts:   len(accounts),
		TotalCurrencies: len(currencies),
		TotalOperations: operations,
	}
}
