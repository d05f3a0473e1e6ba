package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmcdole/whatsleft/internal/domain"
)

// NewItem is the input of the item form
type NewItem struct {
	Name      string
	Category  domain.Category
	Quantity  int
	ExpiresOn time.Time
}

// InventoryService adds, lists and removes items and shopping entries
type InventoryService struct {
	store  domain.InventoryStore
	logger *slog.Logger
	now    func() time.Time
}

// NewInventoryService creates a new inventory service
func NewInventoryService(store domain.InventoryStore, logger *slog.Logger) *InventoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InventoryService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Items returns every tracked item, oldest first
func (s *InventoryService) Items() ([]domain.Item, error) {
	items, err := s.store.GetItems()
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// AddItem validates and stores a new item
func (s *InventoryService) AddItem(in NewItem) (domain.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Item{}, domain.ErrEmptyName
	}
	if in.Category == "" {
		in.Category = domain.CategoryFood
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}
	now := s.now()
	if in.ExpiresOn.IsZero() {
		in.ExpiresOn = now.AddDate(0, 0, 7)
	}

	item := domain.Item{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  in.Category,
		Quantity:  in.Quantity,
		ExpiresOn: in.ExpiresOn,
		AddedAt:   now,
	}
	if err := s.store.SaveItem(item); err != nil {
		return domain.Item{}, fmt.Errorf("save item %q: %w", name, err)
	}
	s.logger.Info("item added", "id", item.ID, "category", item.Category)
	return item, nil
}

// Item looks up one item
func (s *InventoryService) Item(id string) (domain.Item, error) {
	items, err := s.Items()
	if err != nil {
		return domain.Item{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.Item{}, fmt.Errorf("item %s: %w", id, domain.ErrItemNotFound)
}

// DeleteItems removes items by id
func (s *InventoryService) DeleteItems(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.store.DeleteItems(ids); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	s.logger.Info("items deleted", "count", len(ids))
	return nil
}

// ShoppingList returns the shopping list, oldest first
func (s *InventoryService) ShoppingList() ([]domain.ShoppingItem, error) {
	list, err := s.store.GetShoppingList()
	if err != nil {
		return nil, fmt.Errorf("list shopping items: %w", err)
	}
	return list, nil
}

// AddShoppingItem appends an entry to the shopping list
func (s *InventoryService) AddShoppingItem(name string) (domain.ShoppingItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ShoppingItem{}, domain.ErrEmptyName
	}
	entry := domain.ShoppingItem{
		ID:      uuid.NewString(),
		Name:    name,
		AddedAt: s.now(),
	}
	if err := s.store.SaveShoppingItem(entry); err != nil {
		return domain.ShoppingItem{}, fmt.Errorf("save shopping item %q: %w", name, err)
	}
	return entry, nil
}

// ToggleShoppingItem flips the done mark of an entry
func (s *InventoryService) ToggleShoppingItem(id string) (domain.ShoppingItem, error) {
	list, err := s.ShoppingList()
	if err != nil {
		return domain.ShoppingItem{}, err
	}
	for _, entry := range list {
		if entry.ID != id {
			continue
		}
		entry.Done = !entry.Done
		if err := s.store.SaveShoppingItem(entry); err != nil {
			return domain.ShoppingItem{}, fmt.Errorf("save shopping item %q: %w", entry.Name, err)
		}
		return entry, nil
	}
	return domain.ShoppingItem{}, fmt.Errorf("shopping item %s: %w", id, domain.ErrItemNotFound)
}

// DeleteShoppingItems removes shopping entries by id
func (s *InventoryService) DeleteShoppingItems(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.store.DeleteShoppingItems(ids); err != nil {
		return fmt.Errorf("delete shopping items: %w", err)
	}
	return nil
}

// Stats summarizes the inventory by expiry status and category
type Stats struct {
	Total      int
	ByStatus   map[domain.ExpiryStatus]int
	ByCategory map[domain.Category]int
	Shopping   int
}

// Stats counts items for the stats page
func (s *InventoryService) Stats() (Stats, error) {
	items, err := s.Items()
	if err != nil {
		return Stats{}, err
	}
	list, err := s.ShoppingList()
	if err != nil {
		return Stats{}, err
	}

	now := s.now()
	stats := Stats{
		Total:      len(items),
		ByStatus:   make(map[domain.ExpiryStatus]int),
		ByCategory: make(map[domain.Category]int),
		Shopping:   len(list),
	}
	for _, item := range items {
		stats.ByStatus[item.Status(now)]++
		stats.ByCategory[item.Category]++
	}
	return stats, nil
}
