package domain

import (
	"math"
	"strings"
	"time"
)

// Category groups inventory items for filtering and card icons
type Category string

const (
	CategoryFood      Category = "Food"
	CategoryHousehold Category = "Household"
	CategoryOther     Category = "Other"
)

// Categories returns the categories in display order
func Categories() []Category {
	return []Category{CategoryFood, CategoryHousehold, CategoryOther}
}

// Item is a perishable item tracked on the dashboard
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Quantity  int       `json:"quantity"`
	ExpiresOn time.Time `json:"expires_on"`
	AddedAt   time.Time `json:"added_at"`
}

// DaysLeft returns whole days between now and the expiry date.
// Negative values mean the item already expired.
func (i Item) DaysLeft(now time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	ey, em, ed := i.ExpiresOn.In(now.Location()).Date()
	expiry := time.Date(ey, em, ed, 0, 0, 0, 0, now.Location())
	return int(math.Round(expiry.Sub(today).Hours() / 24))
}

// ExpiryStatus is the color bucket of an item card
type ExpiryStatus int

const (
	StatusSafe ExpiryStatus = iota
	StatusWarning
	StatusExpired
)

// Status buckets an item the way the dashboard colors it:
// today/tomorrow count as expired, up to three days is a warning.
func (i Item) Status(now time.Time) ExpiryStatus {
	days := i.DaysLeft(now)
	switch {
	case days <= 1:
		return StatusExpired
	case days <= 3:
		return StatusWarning
	default:
		return StatusSafe
	}
}

// SortTitle returns the lowercase name used for alphabetical sorting
func (i Item) SortTitle() string {
	return strings.ToLower(strings.TrimSpace(i.Name))
}

// ShoppingItem is an entry on the shopping list
type ShoppingItem struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Done    bool      `json:"done"`
	AddedAt time.Time `json:"added_at"`
}
