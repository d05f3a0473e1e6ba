package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/whatsleft/internal/tui/styles"
)

// FAQEntry is one question of the help page
type FAQEntry struct {
	Section  string
	Question string
	Answer   string
}

// DefaultFAQ returns the built-in questions
func DefaultFAQ() []FAQEntry {
	return []FAQEntry{
		{"Basics", "What is WhatsLeft for?", "WhatsLeft keeps track of perishable items at home so you use them before they expire."},
		{"Basics", "How do I add an item?", "Press a on the dashboard, fill in the name, category and days until expiry, then save."},
		{"Basics", "How do I delete an item?", "Open the item with enter and press x, or press v to select several items and delete them together."},
		{"Basics", "What do the card colors mean?", "Red means the item expires today or tomorrow, yellow within three days, green later."},
		{"Features", "Can I scan a barcode?", "In the add form press ctrl+b. A keyboard scanner or typed number fills in the item name."},
		{"Features", "How does batch selection work?", "Press v to enter selection mode, space to mark items and x to delete them. Esc leaves selection mode."},
		{"Dashboard", "How do I filter items?", "Press f and type part of a name, or toggle categories with space."},
		{"Dashboard", "How do I sort items?", "Press s and pick expiry date, name, category or date added. Picking the same field again flips the order."},
		{"Shopping", "How do I add to the shopping list?", "Open the shopping tab with 2 and press a."},
		{"Shopping", "What happens when I check off an entry?", "It is marked done and stays on the list until you delete it."},
		{"Settings", "Can I see the tutorial again?", "Open settings with 4 and press r."},
	}
}

// faqIndex implements fuzzy.Source over lowercase question and answer text
type faqIndex []string

func (idx faqIndex) String(i int) string { return idx[i] }
func (idx faqIndex) Len() int            { return len(idx) }

// FAQ is the accordion help page with fuzzy search
type FAQ struct {
	entries  []FAQEntry
	index    faqIndex
	visible  []int // indexes into entries, in display order
	expanded map[int]bool
	cursor   int
	search   textinput.Model
}

// NewFAQ creates the help page over entries
func NewFAQ(entries []FAQEntry) FAQ {
	ti := textinput.New()
	ti.Placeholder = "Search questions..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.Width = 40

	index := make(faqIndex, len(entries))
	for i, e := range entries {
		index[i] = strings.ToLower(e.Question + " " + e.Answer)
	}

	f := FAQ{
		entries:  entries,
		index:    index,
		expanded: make(map[int]bool),
		search:   ti,
	}
	f.applySearch()
	return f
}

// Searching reports whether the search field owns the keyboard
func (f FAQ) Searching() bool { return f.search.Focused() }

// Visible returns the entries shown for the current query
func (f FAQ) Visible() []FAQEntry {
	out := make([]FAQEntry, len(f.visible))
	for i, idx := range f.visible {
		out[i] = f.entries[idx]
	}
	return out
}

// Expanded reports whether the entry under the cursor is open
func (f FAQ) Expanded() bool {
	if len(f.visible) == 0 {
		return false
	}
	return f.expanded[f.visible[f.cursor]]
}

func (f *FAQ) applySearch() {
	query := strings.ToLower(strings.TrimSpace(f.search.Value()))
	f.visible = make([]int, 0, len(f.entries))
	if query == "" {
		for i := range f.entries {
			f.visible = append(f.visible, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(query, f.index) {
			f.visible = append(f.visible, match.Index)
		}
	}
	f.cursor = max(0, min(f.cursor, len(f.visible)-1))
}

// Update handles keys while the FAQ page is shown
func (f FAQ) Update(msg tea.Msg) (FAQ, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	if f.search.Focused() {
		switch keyMsg.String() {
		case "enter", "esc":
			f.search.Blur()
			return f, nil
		}
		var cmd tea.Cmd
		f.search, cmd = f.search.Update(msg)
		f.applySearch()
		return f, cmd
	}

	switch keyMsg.String() {
	case "/":
		return f, f.search.Focus()
	case "j", "down":
		if f.cursor < len(f.visible)-1 {
			f.cursor++
		}
	case "k", "up":
		if f.cursor > 0 {
			f.cursor--
		}
	case "enter", " ":
		if len(f.visible) > 0 {
			idx := f.visible[f.cursor]
			f.expanded[idx] = !f.expanded[idx]
		}
	}
	return f, nil
}

// View renders the page
func (f FAQ) View(width int) string {
	rows := []string{f.search.View(), ""}
	if len(f.visible) == 0 {
		rows = append(rows, styles.DimStyle.Render("No matching questions"))
	}

	section := ""
	for i, idx := range f.visible {
		e := f.entries[idx]
		if e.Section != section {
			section = e.Section
			rows = append(rows, styles.AccentStyle.Render(section))
		}
		marker := "▸ "
		if f.expanded[idx] {
			marker = "▾ "
		}
		line := marker + e.Question
		if i == f.cursor {
			rows = append(rows, styles.SelectedItemStyle.Render(line))
		} else {
			rows = append(rows, styles.NormalItemStyle.Render(line))
		}
		if f.expanded[idx] {
			rows = append(rows, styles.SubtitleStyle.
				PaddingLeft(4).
				Width(max(20, width-4)).
				Render(e.Answer))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
