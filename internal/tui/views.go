package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/whatsleft/internal/appstate"
	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/tui/components"
	"github.com/mmcdole/whatsleft/internal/tui/styles"
	"github.com/mmcdole/whatsleft/internal/tutorial"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	header := m.renderHeader()
	nav := m.renderNavBar()
	footer := m.renderFooter()

	var panel string
	if m.s.tutorial.Active() {
		panel = m.renderTutorial()
	}

	used := lipgloss.Height(header) + lipgloss.Height(nav) + lipgloss.Height(footer)
	if panel != "" {
		used += lipgloss.Height(panel)
	}
	body := lipgloss.NewStyle().
		Height(max(1, m.Height-used)).
		MaxHeight(max(1, m.Height-used)).
		Render(m.renderPage())

	rows := []string{header, body}
	if panel != "" {
		rows = append(rows, panel)
	}
	rows = append(rows, nav, footer)
	view := lipgloss.JoinVertical(lipgloss.Left, rows...)

	if overlay := m.renderOverlay(panel); overlay != "" {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			overlay)
	}
	return view
}

// renderOverlay returns the topmost modal, or "" when none is open
func (m Model) renderOverlay(panel string) string {
	st := m.s.state
	switch {
	case m.s.exit.Visible():
		return components.RenderExitPrompt()
	case m.Scanner.IsVisible():
		return m.Scanner.View(m.s.guidance.Visible())
	case m.Form.IsVisible():
		if panel != "" {
			return lipgloss.JoinVertical(lipgloss.Center, m.Form.View(m.s.controls), panel)
		}
		return m.Form.View(m.s.controls)
	case m.Input.IsVisible():
		return m.Input.View()
	case st.IsOpen(appstate.ModalProfile):
		return components.RenderProfile(m.s.cfg.Profile.Name, m.s.cfg.Profile.Email, len(m.Items), len(m.Shopping))
	case st.IsOpen(appstate.ModalFilter):
		return m.Filter.View(len(m.visibleItems()))
	case st.IsOpen(appstate.ModalSort):
		return m.Sort.View()
	case st.IsOpen(appstate.ModalItemDetail):
		if item, ok := m.selectedItem(); ok {
			return components.RenderItemDetail(item, time.Now())
		}
	}
	return ""
}

func (m Model) renderHeader() string {
	route := m.s.state.Location()
	title := styles.TitleStyle.Render("WhatsLeft") +
		styles.SubtitleStyle.Render("  "+route.Title())

	var right []string
	if route == appstate.RouteDashboard {
		right = append(right,
			m.renderControl(tutorial.ControlFilterButton, "f Filter", m.Query.Active()),
			m.renderControl(tutorial.ControlSortButton, "s Sort: "+m.Query.Sort.String(), false))
	}
	right = append(right, styles.DimStyle.Render(" p "+m.s.cfg.Profile.Name))
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, right...)

	gap := max(1, m.Width-lipgloss.Width(title)-lipgloss.Width(buttons))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, strings.Repeat(" ", gap), buttons)
}

// renderControl renders a button, with the walkthrough border when highlighted
func (m Model) renderControl(id tutorial.ControlID, label string, active bool) string {
	style := styles.ButtonStyle
	if active {
		style = style.Foreground(styles.Accent)
	}
	if m.s.controls.Highlighted(id) {
		style = styles.HighlightedButtonStyle
	}
	return style.Render(label)
}

func (m Model) renderPage() string {
	route := m.s.state.Location()
	if !route.Known() {
		return styles.TitleStyle.Render("Page not found") + "\n" +
			styles.DimStyle.Render(fmt.Sprintf("%s does not exist. Press esc to go back.", route))
	}

	switch route {
	case appstate.RouteDashboard:
		return m.renderDashboard()
	case appstate.RouteShopList:
		return m.renderShopping()
	case appstate.RouteStats:
		return m.renderStats()
	case appstate.RouteSettings:
		return m.renderSettings()
	case appstate.RouteFAQ:
		return m.FAQ.View(m.Width)
	}
	return ""
}

func (m Model) renderDashboard() string {
	items := m.visibleItems()
	if len(m.Items) == 0 {
		return styles.DimStyle.Render("No items yet. Press a to add your first item.")
	}
	if len(items) == 0 {
		return styles.DimStyle.Render("No items match the filter.")
	}

	now := time.Now()
	multi := m.s.state.MultiSelect(appstate.ListDashboard)
	perRow := max(1, m.Width/(lipgloss.Width(styles.CardStyle.Render(""))+1))

	var rows, row []string
	for i, item := range items {
		row = append(row, renderCard(item, now, i == m.cursor, multi && m.markedItems[item.ID]))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if multi {
		grid = styles.AccentStyle.Render(fmt.Sprintf("%d selected · space mark · x delete · esc done", len(m.markedItems))) + "\n" + grid
	}
	if m.s.controls.Highlighted(tutorial.ControlItemCards) {
		grid = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(styles.Accent).
			Render(grid)
	}
	return grid
}

func renderCard(item domain.Item, now time.Time, selected, marked bool) string {
	style := styles.CardStyle
	switch {
	case marked:
		style = styles.CardMarkedStyle
	case selected:
		style = styles.CardSelectedStyle
	}

	status := item.Status(now)
	name := styles.Truncate(item.Name, 22)
	if marked {
		name = "✓ " + styles.Truncate(item.Name, 20)
	}

	var left string
	switch days := item.DaysLeft(now); {
	case days < 0:
		left = "expired"
	case days == 0:
		left = "today"
	case days == 1:
		left = "1 day left"
	default:
		left = fmt.Sprintf("%d days left", days)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(name),
		styles.DimStyle.Render(fmt.Sprintf("%s · x%d", item.Category, item.Quantity)),
		components.StatusStyle(status).Render(left),
	))
}

func (m Model) renderShopping() string {
	if len(m.Shopping) == 0 {
		return styles.DimStyle.Render("Your shopping list is empty. Press a to add an entry.")
	}
	multi := m.s.state.MultiSelect(appstate.ListShopping)

	lines := make([]string, 0, len(m.Shopping)+1)
	if multi {
		lines = append(lines, styles.AccentStyle.Render(fmt.Sprintf("%d selected · space mark · x delete · esc done", len(m.markedShopping))))
	}
	for i, entry := range m.Shopping {
		box := "[ ]"
		if entry.Done {
			box = "[x]"
		}
		line := box + " " + entry.Name
		if multi && m.markedShopping[entry.ID] {
			line = "✓ " + line
		}
		if i == m.shopCursor {
			lines = append(lines, styles.SelectedItemStyle.Render(line))
		} else {
			lines = append(lines, styles.NormalItemStyle.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStats() string {
	st := m.Stats
	lines := []string{
		styles.TitleStyle.Render(fmt.Sprintf("%d items tracked", st.Total)),
		"",
		styles.SafeStyle.Render(fmt.Sprintf("  Fresh     %d", st.ByStatus[domain.StatusSafe])),
		styles.WarningStyle.Render(fmt.Sprintf("  Soon      %d", st.ByStatus[domain.StatusWarning])),
		styles.ExpiredStyle.Render(fmt.Sprintf("  Expired   %d", st.ByStatus[domain.StatusExpired])),
		"",
	}
	for _, cat := range domain.Categories() {
		lines = append(lines, fmt.Sprintf("  %s %d", styles.Pad(string(cat), 10), st.ByCategory[cat]))
	}
	lines = append(lines, "", styles.DimStyle.Render(fmt.Sprintf("%d entries on the shopping list", st.Shopping)))
	return strings.Join(lines, "\n")
}

func (m Model) renderSettings() string {
	tutorialState := "not finished"
	if m.s.onboarded {
		tutorialState = "finished"
	}
	return strings.Join([]string{
		styles.TitleStyle.Render("Settings"),
		"",
		components.RenderHelpLine("r", "replay the tutorial") + styles.DimStyle.Render("  ("+tutorialState+")"),
		components.RenderHelpLine("g", "show scanner tips again"),
	}, "\n")
}

func (m Model) renderTutorial() string {
	t := m.s.tutorial
	v := components.TutorialView{
		Tips:        t.Tips(),
		Progress:    t.Progress(),
		Step:        t.StepNumber(),
		NextVisible: t.NextVisible(),
	}
	if closing, ok := t.Closing(); ok {
		v.Closing = &closing
	}
	return components.RenderTutorial(v, m.Width)
}

// renderNavBar renders the bottom navigation with the add button in the middle
func (m Model) renderNavBar() string {
	current := m.s.state.Location()
	routes := appstate.Routes()

	var tabs []string
	for i, r := range routes {
		label := fmt.Sprintf("%d %s", i+1, r.Title())
		style := styles.TabStyle
		if r == current {
			style = styles.ActiveTabStyle
		}
		if m.s.controls.Highlighted(tutorial.NavTab(string(r))) {
			style = styles.HighlightedTabStyle
		}
		tabs = append(tabs, style.Render(label))

		if i == len(routes)/2-1 && m.s.controls.Registered(tutorial.ControlAddButton) {
			tabs = append(tabs, m.renderControl(tutorial.ControlAddButton, "+", false))
		}
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	style := lipgloss.NewStyle().
		Width(m.Width).
		Align(lipgloss.Center).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(styles.DimGray)
	if m.s.controls.Highlighted(tutorial.ControlNavBar) {
		style = style.BorderForeground(styles.Accent)
	}
	return style.Render(bar)
}

// renderFooter renders the status message and key help
func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.DimStyle.Render(m.StatusMsg)
	}
	return m.Help.View(Keys)
}
