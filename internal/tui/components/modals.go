package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/tui/styles"
)

// RenderProfile renders the profile modal
func RenderProfile(name, email string, items, shopping int) string {
	if email == "" {
		email = "not set"
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Profile"),
		styles.TitleStyle.Render(name),
		styles.SubtitleStyle.Render(email),
		"",
		fmt.Sprintf("%d items tracked", items),
		fmt.Sprintf("%d on the shopping list", shopping),
		"",
		styles.DimStyle.Render("esc close"),
	)
	return styles.ModalStyle.Width(36).Render(content)
}

// RenderItemDetail renders the item detail modal
func RenderItemDetail(item domain.Item, now time.Time) string {
	days := item.DaysLeft(now)
	var left string
	switch {
	case days < 0:
		left = fmt.Sprintf("expired %d days ago", -days)
	case days == 0:
		left = "expires today"
	case days == 1:
		left = "expires tomorrow"
	default:
		left = fmt.Sprintf("%d days left", days)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(item.Name),
		fmt.Sprintf("Category:  %s", item.Category),
		fmt.Sprintf("Quantity:  %d", item.Quantity),
		fmt.Sprintf("Expires:   %s", item.ExpiresOn.Format("2006-01-02")),
		fmt.Sprintf("Added:     %s", item.AddedAt.Format("2006-01-02")),
		"",
		StatusStyle(item.Status(now)).Render(left),
		"",
		styles.DimStyle.Render("x delete · esc close"),
	)
	return styles.ModalStyle.Width(40).Render(content)
}

// RenderExitPrompt renders the exit confirmation
func RenderExitPrompt() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.ModalTitleStyle.Render("Exit WhatsLeft?"),
		"Are you sure you want to exit the app?",
		"",
		styles.HelpKeyStyle.Render("y")+styles.HelpDescStyle.Render(" exit   ")+
			styles.HelpKeyStyle.Render("n")+styles.HelpDescStyle.Render(" stay"),
	)
	return styles.ModalStyle.Render(content)
}

// StatusStyle returns the color of an expiry bucket
func StatusStyle(s domain.ExpiryStatus) lipgloss.Style {
	switch s {
	case domain.StatusExpired:
		return styles.ExpiredStyle
	case domain.StatusWarning:
		return styles.WarningStyle
	default:
		return styles.SafeStyle
	}
}

// RenderHelpLine renders a one-line list of key hints
func RenderHelpLine(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, styles.HelpKeyStyle.Render(pairs[i])+" "+styles.HelpDescStyle.Render(pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}
