// Package appstate holds the flags and location shared by the tutorial,
// the back handler and the pages: which overlays are open, which lists are
// in multi-select mode, and the route history.
package appstate

import "slices"

// Modal identifies one overlay dialog
type Modal int

const (
	ModalProfile Modal = iota
	ModalFilter
	ModalSort
	ModalItemDetail
	ModalExitPrompt
	modalCount
)

// String returns the modal's log name
func (m Modal) String() string {
	switch m {
	case ModalProfile:
		return "profile"
	case ModalFilter:
		return "filter"
	case ModalSort:
		return "sort"
	case ModalItemDetail:
		return "item-detail"
	case ModalExitPrompt:
		return "exit-prompt"
	default:
		return "unknown"
	}
}

// List identifies a list view that supports multi-select
type List int

const (
	ListDashboard List = iota
	ListShopping
	listCount
)

// String returns the list's log name
func (l List) String() string {
	switch l {
	case ListDashboard:
		return "dashboard"
	case ListShopping:
		return "shopping"
	default:
		return "unknown"
	}
}

// ChangeKind says which part of the state changed
type ChangeKind int

const (
	ChangeModal ChangeKind = iota
	ChangeMultiSelect
	ChangeRoute
)

// Change describes one state mutation
type Change struct {
	Kind  ChangeKind
	Modal Modal // ChangeModal
	List  List  // ChangeMultiSelect
	Open  bool  // new flag value for ChangeModal / ChangeMultiSelect
	From  Route // ChangeRoute
	To    Route // ChangeRoute
	Pop   bool  // ChangeRoute caused by a history pop
}

// Listener is notified after every mutation that changed a value
type Listener func(Change)

// State is the shared application state. It is not safe for concurrent use;
// it lives on the UI event loop.
type State struct {
	modals       [modalCount]bool
	multiSelect  [listCount]bool
	history      []Route
	selectedItem string

	listeners map[int]Listener
	nextID    int
}

// New creates state positioned at the home route
func New() *State {
	return &State{
		history:   []Route{RouteHome},
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers fn for change notifications and returns a function
// that unregisters it.
func (s *State) Subscribe(fn Listener) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *State) notify(c Change) {
	// Listeners may subscribe or unsubscribe while being notified
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := s.listeners[id]; ok {
			fn(c)
		}
	}
}

// === Modals ===

// IsOpen reports whether modal m is visible
func (s *State) IsOpen(m Modal) bool {
	if m < 0 || m >= modalCount {
		return false
	}
	return s.modals[m]
}

// Open makes modal m visible
func (s *State) Open(m Modal) {
	s.setModal(m, true)
}

// Close hides modal m
func (s *State) Close(m Modal) {
	s.setModal(m, false)
}

func (s *State) setModal(m Modal, open bool) {
	if m < 0 || m >= modalCount || s.modals[m] == open {
		return
	}
	s.modals[m] = open
	s.notify(Change{Kind: ChangeModal, Modal: m, Open: open})
}

// OpenModals returns the visible modals in priority order
func (s *State) OpenModals() []Modal {
	var open []Modal
	for m := Modal(0); m < modalCount; m++ {
		if s.modals[m] {
			open = append(open, m)
		}
	}
	return open
}

// === Multi-select ===

// MultiSelect reports whether list l is in multi-select mode
func (s *State) MultiSelect(l List) bool {
	if l < 0 || l >= listCount {
		return false
	}
	return s.multiSelect[l]
}

// SetMultiSelect switches multi-select mode for list l
func (s *State) SetMultiSelect(l List, on bool) {
	if l < 0 || l >= listCount || s.multiSelect[l] == on {
		return
	}
	s.multiSelect[l] = on
	s.notify(Change{Kind: ChangeMultiSelect, List: l, Open: on})
}

// === Routes ===

// Location returns the current route
func (s *State) Location() Route {
	return s.history[len(s.history)-1]
}

// AtHome reports whether the current route is the home route
func (s *State) AtHome() bool {
	return s.Location() == RouteHome
}

// Depth returns the number of entries in the route history
func (s *State) Depth() int {
	return len(s.history)
}

// Navigate pushes r onto the history. Navigating to the current route is a no-op.
func (s *State) Navigate(r Route) {
	from := s.Location()
	if r == from {
		return
	}
	s.history = append(s.history, r)
	s.selectedItem = ""
	s.notify(Change{Kind: ChangeRoute, From: from, To: r})
}

// Back pops one history entry. It reports false when there is nothing to
// pop; the route is then unchanged.
func (s *State) Back() bool {
	if len(s.history) < 2 {
		return false
	}
	from := s.Location()
	s.history = s.history[:len(s.history)-1]
	s.selectedItem = ""
	s.notify(Change{Kind: ChangeRoute, From: from, To: s.Location(), Pop: true})
	return true
}

// === Selection ===

// SelectedItem returns the ID of the item shown in the detail modal
func (s *State) SelectedItem() string {
	return s.selectedItem
}

// SelectItem records the item shown in the detail modal
func (s *State) SelectItem(id string) {
	s.selectedItem = id
}
