package tui

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/whatsleft/internal/appstate"
	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/tui/components"
	"github.com/mmcdole/whatsleft/internal/tutorial"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// The FAQ search field owns esc while focused
	if m.s.state.Location() == appstate.RouteFAQ && m.FAQ.Searching() {
		var cmd tea.Cmd
		m.FAQ, cmd = m.FAQ.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, Keys.Back) {
		m.s.back.Emit()
		return m, nil
	}

	if handled, newModel, cmd := m.routeToDialog(msg); handled {
		return newModel, cmd
	}

	if m.s.tutorial.Active() {
		switch {
		case key.Matches(msg, Keys.TutorialNext):
			m.s.tutorial.Next()
			return m, nil
		case key.Matches(msg, Keys.TutorialSkip):
			m.s.tutorial.Skip()
			return m, nil
		}
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return m, nil

	case key.Matches(msg, Keys.Profile):
		m.s.state.Open(appstate.ModalProfile)
		return m, nil
	}

	for i, binding := range Keys.Tabs {
		if key.Matches(msg, binding) {
			return m.navigate(appstate.Routes()[i])
		}
	}

	switch m.s.state.Location() {
	case appstate.RouteDashboard:
		return m.handleDashboardKey(msg)
	case appstate.RouteShopList:
		return m.handleShoppingKey(msg)
	case appstate.RouteSettings:
		return m.handleSettingsKey(msg)
	case appstate.RouteFAQ:
		var cmd tea.Cmd
		m.FAQ, cmd = m.FAQ.Update(msg)
		return m, cmd
	}
	return m, nil
}

// routeToModal sends keys to the modal that owns the keyboard, if any.
// These modals handle esc themselves instead of the back dispatcher.
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	// Exit prompt
	if m.s.exit.Visible() {
		switch {
		case key.Matches(msg, Keys.Confirm):
			if m.s.exit.Exit() {
				return true, m, tea.Quit
			}
			m.StatusMsg = "Exit is only available in the terminal"
			m.StatusIsErr = true
			return true, m, ClearStatusCmd(3 * time.Second)
		case key.Matches(msg, Keys.Deny):
			m.s.exit.Stay()
		case key.Matches(msg, Keys.Back):
			m.s.back.Emit()
		}
		return true, m, nil
	}

	// Scanner overlay
	if m.Scanner.IsVisible() {
		if m.s.guidance.Visible() {
			m.s.guidance.Dismiss()
		}
		var cmd tea.Cmd
		var submitted, cancelled bool
		m.Scanner, cmd, submitted, cancelled = m.Scanner.Update(msg)
		switch {
		case submitted:
			if code, ok := m.s.guidance.Scanned(m.Scanner.Value()); ok {
				m.Form.SetName(code)
				m.Scanner.Hide()
			}
		case cancelled:
			m.s.guidance.Close()
			m.Scanner.Hide()
		}
		return true, m, cmd
	}

	// Item form
	if m.Form.IsVisible() {
		var cmd tea.Cmd
		var action components.FormAction
		m.Form, cmd, action = m.Form.Update(msg)
		switch action {
		case components.FormSave:
			m, cmd = m.saveItem()
			return true, m, cmd
		case components.FormCancel:
			m.Form.Hide()
		case components.FormScan:
			m.Scanner.Show()
			m.s.guidance.Open()
		}
		return true, m, cmd
	}

	// Shopping entry
	if m.Input.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.Input, cmd, submitted = m.Input.Update(msg)
		if submitted {
			name := strings.TrimSpace(m.Input.Value())
			m.Input.Hide()
			if name != "" {
				return true, m, AddShoppingItemCmd(m.s.inventory, name)
			}
		}
		return true, m, cmd
	}

	return false, m, nil
}

// routeToDialog sends keys to the modals that close through back navigation
func (m Model) routeToDialog(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	st := m.s.state
	switch {
	case st.IsOpen(appstate.ModalProfile):
		return true, m, nil

	case st.IsOpen(appstate.ModalFilter):
		var cmd tea.Cmd
		var done bool
		m.Filter, cmd, done = m.Filter.Update(msg)
		m.Query.Text = m.Filter.Text()
		m.Query.Categories = m.Filter.Categories()
		if done {
			st.Close(appstate.ModalFilter)
		}
		return true, m, cmd

	case st.IsOpen(appstate.ModalSort):
		if sel := m.Sort.HandleKey(msg.String()); sel != nil {
			m.Query.Sort = sel.Field
			m.Query.Descending = sel.Descending
			st.Close(appstate.ModalSort)
		}
		return true, m, nil

	case st.IsOpen(appstate.ModalItemDetail):
		if key.Matches(msg, Keys.Delete) {
			id := st.SelectedItem()
			st.Close(appstate.ModalItemDetail)
			return true, m, DeleteCmd(m.s.inventory, appstate.ListDashboard, []string{id})
		}
		return true, m, nil
	}
	return false, m, nil
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	st := m.s.state
	items := m.visibleItems()
	multi := st.MultiSelect(appstate.ListDashboard)

	switch {
	case key.Matches(msg, Keys.Add):
		if !m.s.controls.Registered(tutorial.ControlAddButton) {
			return m, nil
		}
		m.s.tutorial.ControlActivated(tutorial.ControlAddButton, "+")
		m.Form.Show()
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.s.tutorial.ControlActivated(tutorial.ControlFilterButton, "Filter")
		st.Open(appstate.ModalFilter)
		return m, m.Filter.Focus()

	case key.Matches(msg, Keys.Sort):
		m.s.tutorial.ControlActivated(tutorial.ControlSortButton, "Sort")
		m.Sort.Reset(m.Query.Sort, m.Query.Descending)
		st.Open(appstate.ModalSort)
		return m, nil

	case key.Matches(msg, Keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, Keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case key.Matches(msg, Keys.MultiSelect):
		st.SetMultiSelect(appstate.ListDashboard, !multi)

	case key.Matches(msg, Keys.Mark):
		if multi && len(items) > 0 {
			toggleMark(m.markedItems, items[m.cursor].ID)
		}

	case key.Matches(msg, Keys.Delete):
		if multi && len(m.markedItems) > 0 {
			ids := markedIDs(m.markedItems)
			st.SetMultiSelect(appstate.ListDashboard, false)
			return m, DeleteCmd(m.s.inventory, appstate.ListDashboard, ids)
		}

	case key.Matches(msg, Keys.Enter):
		if len(items) == 0 {
			return m, nil
		}
		m.s.tutorial.ControlActivated(tutorial.ControlItemCards, "Items")
		if multi {
			toggleMark(m.markedItems, items[m.cursor].ID)
			return m, nil
		}
		st.SelectItem(items[m.cursor].ID)
		st.Open(appstate.ModalItemDetail)
	}
	return m, nil
}

func (m Model) handleShoppingKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	st := m.s.state
	multi := st.MultiSelect(appstate.ListShopping)

	switch {
	case key.Matches(msg, Keys.Add):
		m.Input.Show("Add to shopping list")
		return m, nil

	case key.Matches(msg, Keys.Up):
		if m.shopCursor > 0 {
			m.shopCursor--
		}
	case key.Matches(msg, Keys.Down):
		if m.shopCursor < len(m.Shopping)-1 {
			m.shopCursor++
		}

	case key.Matches(msg, Keys.MultiSelect):
		st.SetMultiSelect(appstate.ListShopping, !multi)

	case key.Matches(msg, Keys.Mark), key.Matches(msg, Keys.Enter):
		if len(m.Shopping) == 0 {
			return m, nil
		}
		entry := m.Shopping[m.shopCursor]
		if multi {
			toggleMark(m.markedShopping, entry.ID)
			return m, nil
		}
		return m, ToggleShoppingItemCmd(m.s.inventory, entry.ID)

	case key.Matches(msg, Keys.Delete):
		if multi && len(m.markedShopping) > 0 {
			ids := markedIDs(m.markedShopping)
			st.SetMultiSelect(appstate.ListShopping, false)
			return m, DeleteCmd(m.s.inventory, appstate.ListShopping, ids)
		}
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.ReplayTutorial):
		if err := m.s.prefs.ClearFlag(domain.PrefTutorialCompleted); err != nil {
			return m, func() tea.Msg { return ErrMsg{Err: err, Context: "resetting tutorial"} }
		}
		m.s.onboarded = false
		m.s.tutorial.Reset()
		return m.navigate(appstate.RouteHome)

	case key.Matches(msg, Keys.ResetScanner):
		if err := m.s.prefs.ClearFlag(domain.PrefScannerGuidanceShown); err != nil {
			return m, func() tea.Msg { return ErrMsg{Err: err, Context: "resetting scanner tips"} }
		}
		m.StatusMsg = "Scanner tips will show again"
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)
	}
	return m, nil
}

// navigate switches the bottom-navigation tab to r
func (m Model) navigate(r appstate.Route) (Model, tea.Cmd) {
	m.s.tutorial.ControlActivated(tutorial.NavTab(string(r)), r.Title())
	m.s.state.Navigate(r)
	if r == appstate.RouteStats {
		return m, LoadStatsCmd(m.s.inventory)
	}
	return m, nil
}

// saveItem submits the item form
func (m Model) saveItem() (Model, tea.Cmd) {
	in := m.Form.Input(time.Now())
	if strings.TrimSpace(in.Name) == "" {
		m.StatusMsg = "Item name is required"
		m.StatusIsErr = true
		return m, ClearStatusCmd(3 * time.Second)
	}
	m.s.tutorial.ControlActivated(tutorial.ControlSaveButton, components.SaveButtonLabel)
	m.Form.Hide()
	return m, AddItemCmd(m.s.inventory, in)
}

// handleMouse treats a left press anywhere as a tap on the screen
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.s.tutorial.ScreenTapped()
	}
}

func toggleMark(marks map[string]bool, id string) {
	if marks[id] {
		delete(marks, id)
	} else {
		marks[id] = true
	}
}

func markedIDs(marks map[string]bool) []string {
	ids := make([]string, 0, len(marks))
	for id := range marks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
