package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/whatsleft/internal/domain"
)

// SortField selects the ordering of the dashboard
type SortField int

const (
	SortByExpiry SortField = iota
	SortByName
	SortByCategory
	SortByAdded
)

// SortFields lists the orderings in menu order
func SortFields() []SortField {
	return []SortField{SortByExpiry, SortByName, SortByCategory, SortByAdded}
}

// String returns the menu label
func (f SortField) String() string {
	switch f {
	case SortByExpiry:
		return "Expiry date"
	case SortByName:
		return "Name"
	case SortByCategory:
		return "Category"
	case SortByAdded:
		return "Date added"
	default:
		return "Unknown"
	}
}

// ItemQuery narrows and orders the dashboard
type ItemQuery struct {
	Text       string
	Categories []domain.Category // empty means all
	Sort       SortField
	Descending bool
}

// Active reports whether the query filters anything out
func (q ItemQuery) Active() bool {
	return strings.TrimSpace(q.Text) != "" || len(q.Categories) > 0
}

// Apply filters and sorts items. With a text query the best fuzzy matches
// come first and ties keep the requested ordering.
func (q ItemQuery) Apply(items []domain.Item) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if len(q.Categories) > 0 && !slices.Contains(q.Categories, item.Category) {
			continue
		}
		out = append(out, item)
	}

	slices.SortStableFunc(out, q.compare)

	text := strings.TrimSpace(q.Text)
	if text == "" {
		return out
	}

	names := make([]string, len(out))
	for i, item := range out {
		names[i] = item.Name
	}
	ranks := fuzzy.RankFindFold(text, names)
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.OriginalIndex, b.OriginalIndex)
	})

	matched := make([]domain.Item, len(ranks))
	for i, r := range ranks {
		matched[i] = out[r.OriginalIndex]
	}
	return matched
}

func (q ItemQuery) compare(a, b domain.Item) int {
	var c int
	switch q.Sort {
	case SortByName:
		c = cmp.Compare(a.SortTitle(), b.SortTitle())
	case SortByCategory:
		c = cmp.Compare(a.Category, b.Category)
		if c == 0 {
			c = a.ExpiresOn.Compare(b.ExpiresOn)
		}
	case SortByAdded:
		c = a.AddedAt.Compare(b.AddedAt)
	default:
		c = a.ExpiresOn.Compare(b.ExpiresOn)
	}
	if q.Descending {
		return -c
	}
	return c
}
