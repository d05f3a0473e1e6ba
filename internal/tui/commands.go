package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/whatsleft/internal/appstate"
	"github.com/mmcdole/whatsleft/internal/service"
)

// Command factories for store operations

// LoadItemsCmd loads the dashboard items
func LoadItemsCmd(svc *service.InventoryService) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.Items()
		if err != nil {
			return ErrMsg{Err: err, Context: "loading items"}
		}
		return ItemsLoadedMsg{Items: items}
	}
}

// LoadShoppingCmd loads the shopping list
func LoadShoppingCmd(svc *service.InventoryService) tea.Cmd {
	return func() tea.Msg {
		list, err := svc.ShoppingList()
		if err != nil {
			return ErrMsg{Err: err, Context: "loading shopping list"}
		}
		return ShoppingLoadedMsg{Items: list}
	}
}

// LoadStatsCmd computes the stats page counts
func LoadStatsCmd(svc *service.InventoryService) tea.Cmd {
	return func() tea.Msg {
		stats, err := svc.Stats()
		if err != nil {
			return ErrMsg{Err: err, Context: "loading stats"}
		}
		return StatsLoadedMsg{Stats: stats}
	}
}

// AddItemCmd saves a new item
func AddItemCmd(svc *service.InventoryService, in service.NewItem) tea.Cmd {
	return func() tea.Msg {
		item, err := svc.AddItem(in)
		if err != nil {
			return ErrMsg{Err: err, Context: "saving item"}
		}
		return ItemAddedMsg{Item: item}
	}
}

// AddShoppingItemCmd appends to the shopping list and reloads it
func AddShoppingItemCmd(svc *service.InventoryService, name string) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.AddShoppingItem(name); err != nil {
			return ErrMsg{Err: err, Context: "adding to shopping list"}
		}
		return LoadShoppingCmd(svc)()
	}
}

// ToggleShoppingItemCmd flips an entry's done mark and reloads the list
func ToggleShoppingItemCmd(svc *service.InventoryService, id string) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.ToggleShoppingItem(id); err != nil {
			return ErrMsg{Err: err, Context: "updating shopping list"}
		}
		return LoadShoppingCmd(svc)()
	}
}

// DeleteCmd removes ids from the dashboard or the shopping list
func DeleteCmd(svc *service.InventoryService, list appstate.List, ids []string) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch list {
		case appstate.ListShopping:
			err = svc.DeleteShoppingItems(ids)
		default:
			err = svc.DeleteItems(ids)
		}
		if err != nil {
			return ErrMsg{Err: err, Context: "deleting"}
		}
		return ItemsDeletedMsg{List: list, Count: len(ids)}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
