package portfolio

import (
	"sort"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
)

// RecentOperations flattens the operations of all accounts, newest first, and
// keeps at most limit of them. A limit <= 0 keeps everything.
func RecentOperations(accounts []*domain.Account, limit int) []domain.OperationItem {
	items := make([]domain.OperationItem, 0)
	for _, a := range accounts {
		path := AccountPath(a.ID)
		for _, op := range a.Operations {
			items = append(items, domain.OperationItem{
				Operation:   op,
				AccountName: a.Name,
				AccountPath: path,
				Currency:    a.Currency,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].ID < items[j].ID
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
