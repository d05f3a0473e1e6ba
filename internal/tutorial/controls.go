package tutorial

import "strings"

// ControlID is the stable identifier a view registers a control under
type ControlID string

const (
	ControlAddButton     ControlID = "add-button"
	ControlItemNameField ControlID = "item-name-field"
	ControlSaveButton    ControlID = "save-button"
	ControlItemCards     ControlID = "item-cards"
	ControlFilterButton  ControlID = "filter-button"
	ControlSortButton    ControlID = "sort-button"
	ControlNavBar        ControlID = "nav-bar"

	navTabPrefix = "nav-tab:"
)

// Other identifiers item forms use for their save control
var saveControlIDs = []ControlID{
	ControlSaveButton,
	"save-item-button",
	"save-your-item-button",
}

// NavTab returns the id of the navigation tab for a route
func NavTab(route string) ControlID {
	return ControlID(navTabPrefix + route)
}

// IsSaveControl reports whether a control saves the item form: either a
// known save identifier or any label containing "save".
func IsSaveControl(id ControlID, label string) bool {
	for _, known := range saveControlIDs {
		if id == known {
			return true
		}
	}
	return strings.Contains(strings.ToLower(label), "save")
}

// Registry is the set of controls currently on screen and the highlight
// marks placed on them.
type Registry struct {
	labels      map[ControlID]string
	order       []ControlID
	highlighted map[ControlID]bool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		labels:      make(map[ControlID]string),
		highlighted: make(map[ControlID]bool),
	}
}

// Register records a control. Registering again updates its label.
func (r *Registry) Register(id ControlID, label string) {
	if _, ok := r.labels[id]; !ok {
		r.order = append(r.order, id)
	}
	r.labels[id] = label
}

// Unregister removes a control and any highlight on it
func (r *Registry) Unregister(id ControlID) {
	if _, ok := r.labels[id]; !ok {
		return
	}
	delete(r.labels, id)
	delete(r.highlighted, id)
	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Registered reports whether id is on screen
func (r *Registry) Registered(id ControlID) bool {
	_, ok := r.labels[id]
	return ok
}

// Label returns the visible label of a control
func (r *Registry) Label(id ControlID) string {
	return r.labels[id]
}

// NavTabs returns the registered navigation tabs in registration order
func (r *Registry) NavTabs() []ControlID {
	var tabs []ControlID
	for _, id := range r.order {
		if strings.HasPrefix(string(id), navTabPrefix) {
			tabs = append(tabs, id)
		}
	}
	return tabs
}

// Highlight marks a registered control. Reports false when id is not on screen.
func (r *Registry) Highlight(id ControlID) bool {
	if !r.Registered(id) {
		return false
	}
	r.highlighted[id] = true
	return true
}

// Highlighted reports whether id carries a highlight mark
func (r *Registry) Highlighted(id ControlID) bool {
	return r.highlighted[id]
}

// HighlightCount returns the number of marked controls
func (r *Registry) HighlightCount() int {
	return len(r.highlighted)
}

// ClearHighlights removes every highlight mark
func (r *Registry) ClearHighlights() {
	clear(r.highlighted)
}
