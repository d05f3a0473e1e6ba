package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/service"
	"github.com/mmcdole/whatsleft/internal/tui/styles"
	"github.com/mmcdole/whatsleft/internal/tutorial"
)

// Highlighter tells views which controls the walkthrough points at
type Highlighter interface {
	Highlighted(id tutorial.ControlID) bool
}

// FormAction is what a key press in the item form asked for
type FormAction int

const (
	FormNone FormAction = iota
	FormSave
	FormCancel
	FormScan
)

// Labels of the form's registered controls
const (
	NameFieldLabel  = "Item name"
	SaveButtonLabel = "Save Item"
)

type formField int

const (
	fieldName formField = iota
	fieldCategory
	fieldDays
	fieldSave
	fieldCount
)

// ItemForm is the add-item form. It owns keyboard focus while visible.
type ItemForm struct {
	visible  bool
	focus    formField
	name     textinput.Model
	days     textinput.Model
	category int
}

// NewItemForm creates a hidden form
func NewItemForm() ItemForm {
	name := textinput.New()
	name.Placeholder = "Enter item name"
	name.CharLimit = 60
	name.Width = 30
	name.Prompt = ""

	days := textinput.New()
	days.Placeholder = "7"
	days.CharLimit = 4
	days.Width = 6
	days.Prompt = ""
	days.Validate = func(s string) error {
		if s == "" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}

	return ItemForm{name: name, days: days}
}

// Show opens an empty form with the name field focused
func (f *ItemForm) Show() {
	f.visible = true
	f.category = 0
	f.name.SetValue("")
	f.days.SetValue("")
	f.setFocus(fieldName)
}

// Hide closes the form
func (f *ItemForm) Hide() {
	f.visible = false
	f.name.Blur()
	f.days.Blur()
}

// IsVisible returns whether the form is shown
func (f ItemForm) IsVisible() bool { return f.visible }

// SetName fills the name field, as a scan result does
func (f *ItemForm) SetName(name string) {
	f.name.SetValue(name)
	f.name.CursorEnd()
}

// Input returns the form contents relative to now
func (f ItemForm) Input(now time.Time) service.NewItem {
	in := service.NewItem{
		Name:     strings.TrimSpace(f.name.Value()),
		Category: domain.Categories()[f.category],
		Quantity: 1,
	}
	if days, err := strconv.Atoi(f.days.Value()); err == nil {
		in.ExpiresOn = now.AddDate(0, 0, days)
	}
	return in
}

// FocusedSave reports whether the save button has focus
func (f ItemForm) FocusedSave() bool { return f.focus == fieldSave }

func (f *ItemForm) setFocus(field formField) {
	f.focus = (field + fieldCount) % fieldCount
	f.name.Blur()
	f.days.Blur()
	switch f.focus {
	case fieldName:
		f.name.Focus()
	case fieldDays:
		f.days.Focus()
	}
}

// Update handles input events, returns (form, cmd, action)
func (f ItemForm) Update(msg tea.Msg) (ItemForm, tea.Cmd, FormAction) {
	if !f.visible {
		return f, nil, FormNone
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return f, nil, FormCancel
		case "ctrl+b":
			return f, nil, FormScan
		case "ctrl+s":
			return f, nil, FormSave
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, nil, FormNone
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil, FormNone
		case "enter":
			if f.focus == fieldSave {
				return f, nil, FormSave
			}
			f.setFocus(f.focus + 1)
			return f, nil, FormNone
		}

		if f.focus == fieldCategory {
			switch keyMsg.String() {
			case "left", "h":
				f.category = (f.category + len(domain.Categories()) - 1) % len(domain.Categories())
			case "right", "l", " ":
				f.category = (f.category + 1) % len(domain.Categories())
			}
			return f, nil, FormNone
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldDays:
		f.days, cmd = f.days.Update(msg)
	}
	return f, cmd, FormNone
}

// View renders the form. Highlighted controls get the walkthrough border.
func (f ItemForm) View(h Highlighter) string {
	if !f.visible {
		return ""
	}

	const width = 36

	label := func(text string, field formField) string {
		style := styles.SubtitleStyle
		if f.focus == field {
			style = styles.AccentStyle
		}
		return style.Render(text)
	}

	nameBox := styles.ButtonStyle
	if h.Highlighted(tutorial.ControlItemNameField) {
		nameBox = styles.HighlightedButtonStyle
	}

	category := "‹ " + string(domain.Categories()[f.category]) + " ›"

	save := styles.ButtonStyle
	if f.focus == fieldSave {
		save = save.BorderForeground(styles.White)
	}
	if h.Highlighted(tutorial.ControlSaveButton) {
		save = styles.HighlightedButtonStyle
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Add Item"),
		label("Name", fieldName),
		nameBox.Width(width-4).Render(f.name.View()),
		label("Category", fieldCategory),
		"  "+category,
		label("Expires in (days)", fieldDays),
		"  "+f.days.View(),
		"",
		save.Render(SaveButtonLabel),
		styles.DimStyle.Render("tab next · ctrl+b scan · esc cancel"),
	)

	return styles.ModalStyle.Width(width + 4).Render(content)
}
