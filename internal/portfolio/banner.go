package portfolio

import (
	"sort"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
)

// SelectBanner returns the banner to display: the first non-dismissed one by
// ascending Priority, ties keeping declaration order. The bool is false when
// every banner was dismissed and the separator should be shown instead.
func SelectBanner(banners []domain.Banner) (*domain.Banner, bool) {
	ordered := make([]domain.Banner, len(banners))
	copy(ordered, banners)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	for i := range ordered {
		if !ordered[i].Dismissed {
			selected := ordered[i]
			return &selected, true
		}
	}
	return nil, false
}

// ApplyDismissals marks the banners dismissed by a workspace. Banners that
// cannot be dismissed are never marked.
func ApplyDismissals(banners []domain.Banner, dismissed map[string]bool) []domain.Banner {
	out := make([]domain.Banner, len(banners))
	for i, b := range banners {
		b.Dismissed = b.Dismissable && dismissed[b.ID]
		out[i] = b
	}
	return out
}
