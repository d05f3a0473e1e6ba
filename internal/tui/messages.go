package tui

import (
	"time"

	"github.com/mmcdole/whatsleft/internal/appstate"
	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// TickMsg advances the timer queue to Time
type TickMsg struct {
	Time time.Time
}

// ItemsLoadedMsg carries the dashboard items
type ItemsLoadedMsg struct {
	Items []domain.Item
}

// ShoppingLoadedMsg carries the shopping list
type ShoppingLoadedMsg struct {
	Items []domain.ShoppingItem
}

// StatsLoadedMsg carries the stats page counts
type StatsLoadedMsg struct {
	Stats service.Stats
}

// ItemAddedMsg signals a saved item
type ItemAddedMsg struct {
	Item domain.Item
}

// ItemsDeletedMsg signals removed items
type ItemsDeletedMsg struct {
	List  appstate.List
	Count int
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
