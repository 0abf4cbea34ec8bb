package tui

import (
	"sort"

	"github.com/dafibh/fortuna/portfolio-backend/internal/handler"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterAccounts returns the accounts whose name or ticker fuzzily matches
// query, best match first. An empty query keeps the server order.
func FilterAccounts(accounts []handler.AccountCardResponse, query string) []handler.AccountCardResponse {
	if query == "" {
		return accounts
	}

	targets := make([]string, len(accounts))
	for i, a := range accounts {
		targets[i] = a.Name + " " + a.Currency.Ticker
	}

	ranks := fuzzy.RankFindFold(query, targets)
	sort.Stable(ranks)

	out := make([]handler.AccountCardResponse, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, accounts[r.OriginalIndex])
	}
	return out
}
