package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/store"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *InventoryService {
	t.Helper()
	st, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := NewInventoryService(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestAddItemDefaults(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.AddItem(NewItem{Name: "  Milk "})
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)
	require.Equal(t, "Milk", item.Name)
	require.Equal(t, domain.CategoryFood, item.Category)
	require.Equal(t, 1, item.Quantity)
	require.Equal(t, 7, item.DaysLeft(fixedNow))

	got, err := svc.Item(item.ID)
	require.NoError(t, err)
	require.Equal(t, item.Name, got.Name)
}

func TestAddItemRejectsEmptyName(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.AddItem(NewItem{Name: "   "})
	require.ErrorIs(t, err, domain.ErrEmptyName)
}

func TestItemNotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Item("missing")
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestDeleteItems(t *testing.T) {
	svc := newTestService(t)
	a, err := svc.AddItem(NewItem{Name: "Eggs"})
	require.NoError(t, err)
	b, err := svc.AddItem(NewItem{Name: "Soap", Category: domain.CategoryHousehold})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItems([]string{a.ID}))
	items, err := svc.Items()
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, b.ID, items[0].ID)

	require.NoError(t, svc.DeleteItems(nil))
}

func TestShoppingList(t *testing.T) {
	svc := newTestService(t)
	entry, err := svc.AddShoppingItem("Bread")
	require.NoError(t, err)

	toggled, err := svc.ToggleShoppingItem(entry.ID)
	require.NoError(t, err)
	require.True(t, toggled.Done)

	_, err = svc.ToggleShoppingItem("missing")
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	require.NoError(t, svc.DeleteShoppingItems([]string{entry.ID}))
	list, err := svc.ShoppingList()
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestStats(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.AddItem(NewItem{Name: "Yogurt", ExpiresOn: fixedNow})
	require.NoError(t, err)
	_, err = svc.AddItem(NewItem{Name: "Cheese", ExpiresOn: fixedNow.AddDate(0, 0, 3)})
	require.NoError(t, err)
	_, err = svc.AddItem(NewItem{Name: "Rice", ExpiresOn: fixedNow.AddDate(0, 1, 0)})
	require.NoError(t, err)
	_, err = svc.AddShoppingItem("Apples")
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 1, stats.ByStatus[domain.StatusExpired])
	require.Equal(t, 1, stats.ByStatus[domain.StatusWarning])
	require.Equal(t, 1, stats.ByStatus[domain.StatusSafe])
	require.Equal(t, 3, stats.ByCategory[domain.CategoryFood])
	require.Equal(t, 1, stats.Shopping)
}

func TestItemQuery(t *testing.T) {
	items := []domain.Item{
		{ID: "1", Name: "Milk", Category: domain.CategoryFood, ExpiresOn: fixedNow.AddDate(0, 0, 5), AddedAt: fixedNow},
		{ID: "2", Name: "Dish soap", Category: domain.CategoryHousehold, ExpiresOn: fixedNow.AddDate(0, 2, 0), AddedAt: fixedNow.Add(time.Hour)},
		{ID: "3", Name: "Mozzarella", Category: domain.CategoryFood, ExpiresOn: fixedNow.AddDate(0, 0, 1), AddedAt: fixedNow.Add(2 * time.Hour)},
	}
	ids := func(items []domain.Item) []string {
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = item.ID
		}
		return out
	}

	require.Equal(t, []string{"3", "1", "2"}, ids(ItemQuery{}.Apply(items)))
	require.Equal(t, []string{"2", "1", "3"}, ids(ItemQuery{Sort: SortByName}.Apply(items)))
	require.Equal(t, []string{"3", "2", "1"}, ids(ItemQuery{Sort: SortByAdded, Descending: true}.Apply(items)))
	require.Equal(t, []string{"2"}, ids(ItemQuery{Categories: []domain.Category{domain.CategoryHousehold}}.Apply(items)))
	require.Equal(t, []string{"1"}, ids(ItemQuery{Text: "MLK"}.Apply(items)))
	require.Empty(t, ItemQuery{Text: "zzz"}.Apply(items))
	require.False(t, ItemQuery{Text: "  "}.Active())
}
