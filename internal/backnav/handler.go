// Package backnav turns the host's back signal into exactly one UI action.
package backnav

import (
	"log/slog"

	"github.com/mmcdole/whatsleft/internal/appstate"
)

// Action is the single outcome of one back signal
type Action int

const (
	ActionNone Action = iota
	ActionCloseProfile
	ActionCloseFilter
	ActionCloseSort
	ActionCloseItemDetail
	ActionExitDashboardSelect
	ActionExitShoppingSelect
	ActionNavigateBack
	ActionPromptExit
)

// String returns the action's log name
func (a Action) String() string {
	switch a {
	case ActionCloseProfile:
		return "close-profile"
	case ActionCloseFilter:
		return "close-filter"
	case ActionCloseSort:
		return "close-sort"
	case ActionCloseItemDetail:
		return "close-item-detail"
	case ActionExitDashboardSelect:
		return "exit-dashboard-select"
	case ActionExitShoppingSelect:
		return "exit-shopping-select"
	case ActionNavigateBack:
		return "navigate-back"
	case ActionPromptExit:
		return "prompt-exit"
	default:
		return "none"
	}
}

// Flags is the read side of the shared state that decides a back action
type Flags interface {
	IsOpen(m appstate.Modal) bool
	MultiSelect(l appstate.List) bool
	Location() appstate.Route
	Depth() int
}

// Resolve picks the action for one back signal. First match wins:
// open modals in priority order, then multi-select modes, then history,
// then the exit prompt. A route with no history behind it prompts to exit
// like home does.
func Resolve(f Flags) Action {
	switch {
	case f.IsOpen(appstate.ModalProfile):
		return ActionCloseProfile
	case f.IsOpen(appstate.ModalFilter):
		return ActionCloseFilter
	case f.IsOpen(appstate.ModalSort):
		return ActionCloseSort
	case f.IsOpen(appstate.ModalItemDetail):
		return ActionCloseItemDetail
	case f.MultiSelect(appstate.ListDashboard):
		return ActionExitDashboardSelect
	case f.MultiSelect(appstate.ListShopping):
		return ActionExitShoppingSelect
	case f.Location() != appstate.RouteHome && f.Depth() > 1:
		return ActionNavigateBack
	default:
		return ActionPromptExit
	}
}

// Source delivers the host's back signal
type Source interface {
	AddListener(fn func()) (Subscription, error)
}

// Subscription is a live listener registration on a Source
type Subscription interface {
	Remove() error
}

// Handler applies back actions to the shared state. It keeps exactly one
// listener on its Source and replaces it whenever the route or a watched
// flag changes.
type Handler struct {
	state  *appstate.State
	source Source
	logger *slog.Logger

	sub     Subscription
	unwatch func()
	last    Action
}

// NewHandler creates a back handler; call Start to begin listening
func NewHandler(state *appstate.State, source Source, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		state:  state,
		source: source,
		logger: logger,
	}
}

// Start binds to the back source and re-binds on every state change
func (h *Handler) Start() {
	if h.unwatch != nil {
		return
	}
	h.unwatch = h.state.Subscribe(func(appstate.Change) {
		h.bind()
	})
	h.bind()
}

// Stop removes the listener and stops watching state
func (h *Handler) Stop() {
	if h.unwatch != nil {
		h.unwatch()
		h.unwatch = nil
	}
	h.unbind()
}

// Bound reports whether a listener is currently registered
func (h *Handler) Bound() bool {
	return h.sub != nil
}

// Last returns the action taken for the most recent back signal
func (h *Handler) Last() Action {
	return h.last
}

func (h *Handler) bind() {
	h.unbind()

	sub, err := h.source.AddListener(func() { h.Handle() })
	if err != nil {
		h.logger.Error("failed to add back listener", "error", err)
		return
	}
	h.sub = sub
}

func (h *Handler) unbind() {
	if h.sub == nil {
		return
	}
	if err := h.sub.Remove(); err != nil {
		h.logger.Warn("failed to remove back listener", "error", err)
	}
	h.sub = nil
}

// Handle resolves and applies the action for one back signal
func (h *Handler) Handle() Action {
	action := Resolve(h.state)
	h.logger.Debug("back signal",
		"route", h.state.Location(),
		"modals", h.state.OpenModals(),
		"action", action.String())

	switch action {
	case ActionCloseProfile:
		h.state.Close(appstate.ModalProfile)
	case ActionCloseFilter:
		h.state.Close(appstate.ModalFilter)
	case ActionCloseSort:
		h.state.Close(appstate.ModalSort)
	case ActionCloseItemDetail:
		h.state.Close(appstate.ModalItemDetail)
	case ActionExitDashboardSelect:
		h.state.SetMultiSelect(appstate.ListDashboard, false)
	case ActionExitShoppingSelect:
		h.state.SetMultiSelect(appstate.ListShopping, false)
	case ActionNavigateBack:
		if !h.state.Back() {
			h.logger.Warn("back signal with empty history", "route", h.state.Location())
		}
	case ActionPromptExit:
		h.state.Open(appstate.ModalExitPrompt)
	}

	h.last = action
	return action
}
