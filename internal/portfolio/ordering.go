package portfolio

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
)

const (
	OrderByBalance = "balance"
	OrderByName    = "name"
	OrderByIndex   = "index"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Ordering is a parsed "<key>|<direction>" account ordering preference
type Ordering struct {
	Key  string
	Desc bool
}

// ParseOrdering validates an ordering string such as "balance|desc"
func ParseOrdering(s string) (Ordering, error) {
	key, dir, ok := strings.Cut(s, "|")
	if !ok {
		return Ordering{}, fmt.Errorf("%w: %q", domain.ErrInvalidOrdering, s)
	}
	switch key {
	case OrderByBalance, OrderByName, OrderByIndex:
	default:
		return Ordering{}, fmt.Errorf("%w: unknown key %q", domain.ErrInvalidOrdering, key)
	}
	switch dir {
	case OrderAsc, OrderDesc:
	default:
		return Ordering{}, fmt.Errorf("%w: unknown direction %q", domain.ErrInvalidOrdering, dir)
	}
	return Ordering{Key: key, Desc: dir == OrderDesc}, nil
}

// String renders the ordering back to its stored form
func (o Ordering) String() string {
	dir := OrderAsc
	if o.Desc {
		dir = OrderDesc
	}
	return o.Key + "|" + dir
}

// SortAccountCards orders cards in place. Balance ordering compares counter
// value balances; ties fall back to the account name.
func SortAccountCards(cards []domain.AccountCard, indexByID map[string]int, o Ordering) {
	less := func(a, b domain.AccountCard) int {
		switch o.Key {
		case OrderByBalance:
			return a.CountervalueBalance.Cmp(b.CountervalueBalance)
		case OrderByIndex:
			return indexByID[a.ID] - indexByID[b.ID]
		default:
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}

	sort.SliceStable(cards, func(i, j int) bool {
		c := less(cards[i], cards[j])
		if c == 0 {
			return strings.ToLower(cards[i].Name) < strings.ToLower(cards[j].Name)
		}
		if o.Desc {
			return c > 0
		}
		return c < 0
	})
}

// BuildAccountCards joins accounts with their histories. The change is
// measured over the whole window in the counter value.
func BuildAccountCards(accounts []*domain.Account, histories []AccountHistory) []domain.AccountCard {
	byID := make(map[string]AccountHistory, len(histories))
	for _, h := range histories {
		byID[h.AccountID] = h
	}

	cards := make([]domain.AccountCard, 0, len(accounts))
	for _, a := range accounts {
		card := domain.AccountCard{
			ID:       a.ID,
			Name:     a.Name,
			Path:     AccountPath(a.ID),
			Currency: a.Currency,
			Balance:  a.Balance,
		}
		if h, ok := byID[a.ID]; ok && len(h.Countervalue) > 0 {
			first := h.Countervalue[0].Value
			last := h.Countervalue[len(h.Countervalue)-1].Value
			card.CountervalueBalance = last
			card.CountervalueChange = last.Sub(first)
			card.IsAvailable = h.IsAvailable
			card.History = h.Countervalue
		}
		cards = append(cards, card)
	}
	return cards
}
