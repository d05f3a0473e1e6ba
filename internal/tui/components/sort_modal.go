package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/whatsleft/internal/service"
	"github.com/mmcdole/whatsleft/internal/tui/styles"
)

// SortSelection represents the user's sort choice
type SortSelection struct {
	Field      service.SortField
	Descending bool
}

// SortModal is a small popup for choosing the dashboard order.
// Its visibility lives in the shared app state; the modal only keeps
// the cursor.
type SortModal struct {
	options    []service.SortField
	cursor     int
	active     service.SortField
	descending bool
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{options: service.SortFields()}
}

// Reset positions the cursor on the active ordering
func (m *SortModal) Reset(active service.SortField, descending bool) {
	m.active = active
	m.descending = descending
	m.cursor = 0
	for i, opt := range m.options {
		if opt == active {
			m.cursor = i
			break
		}
	}
}

// HandleKey processes a key press. A non-nil selection means the user
// confirmed a choice; choosing the active field again flips direction.
func (m *SortModal) HandleKey(key string) *SortSelection {
	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		chosen := m.options[m.cursor]
		desc := false
		if chosen == m.active {
			desc = !m.descending
		}
		m.active, m.descending = chosen, desc
		return &SortSelection{Field: chosen, Descending: desc}
	}
	return nil
}

// View renders the sort modal
func (m SortModal) View() string {
	var lines []string
	for i, opt := range m.options {
		isActive := opt == m.active

		prefix := "  "
		if isActive {
			prefix = "✓ "
		}
		suffix := ""
		if isActive {
			suffix = " ↑"
			if m.descending {
				suffix = " ↓"
			}
		}
		text := styles.Pad(prefix+opt.String()+suffix, 20)

		switch {
		case i == m.cursor:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(text))
		case isActive:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.Accent).
				Render(text))
		default:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(text))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}
