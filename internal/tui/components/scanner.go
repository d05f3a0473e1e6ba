package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/whatsleft/internal/tui/styles"
)

// ScannerOverlay reads a barcode typed or piped in by a keyboard-wedge scanner
type ScannerOverlay struct {
	visible bool
	input   textinput.Model
}

// NewScannerOverlay creates a hidden scanner
func NewScannerOverlay() ScannerOverlay {
	ti := textinput.New()
	ti.Placeholder = "Scan or type a barcode"
	ti.CharLimit = 64
	ti.Width = 30
	ti.Prompt = "▌ "
	return ScannerOverlay{input: ti}
}

// Show opens the scanner with an empty field
func (s *ScannerOverlay) Show() {
	s.visible = true
	s.input.SetValue("")
	s.input.Focus()
}

// Hide closes the scanner
func (s *ScannerOverlay) Hide() {
	s.visible = false
	s.input.Blur()
}

// IsVisible returns whether the scanner is shown
func (s ScannerOverlay) IsVisible() bool { return s.visible }

// Value returns the code read so far
func (s ScannerOverlay) Value() string { return s.input.Value() }

// Update handles input events, returns (overlay, cmd, submitted, cancelled)
func (s ScannerOverlay) Update(msg tea.Msg) (ScannerOverlay, tea.Cmd, bool, bool) {
	if !s.visible {
		return s, nil, false, false
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return s, nil, true, false
		case "esc":
			return s, nil, false, true
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, false, false
}

// View renders the scanner, with the first-use guidance when asked
func (s ScannerOverlay) View(guidance bool) string {
	if !s.visible {
		return ""
	}
	parts := []string{
		styles.ModalTitleStyle.Render("Scan Barcode"),
		s.input.View(),
	}
	if guidance {
		parts = append(parts, "",
			styles.TipTitleStyle.Render("How to scan"),
			styles.SubtitleStyle.Width(34).Render(
				"Point your scanner at the barcode, or type the number and press enter. The code becomes the item name."))
	}
	parts = append(parts, "", styles.DimStyle.Render("enter use code · esc cancel"))
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
