package components

import (
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/tui/styles"
)

// FilterModal edits the dashboard's text query and category set.
// Row 0 is the text query, the rest are category toggles.
type FilterModal struct {
	input    textinput.Model
	cursor   int
	selected []domain.Category
}

// NewFilterModal creates a new filter modal
func NewFilterModal() FilterModal {
	ti := textinput.New()
	ti.Placeholder = "Search items..."
	ti.CharLimit = 50
	ti.Width = 28
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	return FilterModal{input: ti}
}

// Focus puts the cursor on the text query
func (m *FilterModal) Focus() tea.Cmd {
	m.cursor = 0
	return m.input.Focus()
}

// Text returns the text query
func (m FilterModal) Text() string { return m.input.Value() }

// Categories returns the selected categories, empty for all
func (m FilterModal) Categories() []domain.Category {
	return slices.Clone(m.selected)
}

// Clear drops the query and category selection
func (m *FilterModal) Clear() {
	m.input.SetValue("")
	m.selected = nil
}

// Update handles input events, returns (modal, cmd, done)
func (m FilterModal) Update(msg tea.Msg) (FilterModal, tea.Cmd, bool) {
	cats := domain.Categories()
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, nil, true
		case "down", "tab":
			if m.cursor < len(cats) {
				m.cursor++
				m.input.Blur()
			}
			return m, nil, false
		case "up", "shift+tab":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor == 0 {
					return m, m.input.Focus(), false
				}
			}
			return m, nil, false
		case "ctrl+u":
			m.Clear()
			return m, nil, false
		case " ":
			if m.cursor > 0 {
				cat := cats[m.cursor-1]
				if i := slices.Index(m.selected, cat); i >= 0 {
					m.selected = slices.Delete(m.selected, i, i+1)
				} else {
					m.selected = append(m.selected, cat)
				}
				return m, nil, false
			}
		}
	}

	if m.cursor != 0 {
		return m, nil, false
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the filter modal with the number of matching items
func (m FilterModal) View(matches int) string {
	rows := []string{styles.ModalTitleStyle.Render("Filter"), m.input.View(), ""}
	for i, cat := range domain.Categories() {
		mark := "[ ]"
		if slices.Contains(m.selected, cat) {
			mark = "[x]"
		}
		line := mark + " " + string(cat)
		if m.cursor == i+1 {
			line = styles.SelectedItemStyle.Render(line)
		} else {
			line = styles.NormalItemStyle.Render(line)
		}
		rows = append(rows, line)
	}
	rows = append(rows, "",
		styles.SubtitleStyle.Render(pluralize(matches, "match", "matches")),
		styles.DimStyle.Render("space toggle · ctrl+u clear · esc close"))
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
