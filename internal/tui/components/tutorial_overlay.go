package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/whatsleft/internal/tui/styles"
	"github.com/mmcdole/whatsleft/internal/tutorial"
)

// TutorialView is what the walkthrough panel shows
type TutorialView struct {
	Tips        []tutorial.Tip
	Closing     *tutorial.Closing
	Progress    int
	Step        int
	NextVisible bool
}

// RenderTutorial renders the walkthrough panel docked under the page
func RenderTutorial(v TutorialView, width int) string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.TipTitleStyle.Render(fmt.Sprintf("Tutorial · step %d/4 ", v.Step)),
		styles.RenderProgressBar(v.Progress, 20),
		styles.SubtitleStyle.Render(fmt.Sprintf(" %d%%", v.Progress)),
	)

	tips := make([]string, 0, len(v.Tips))
	for _, tip := range v.Tips {
		tips = append(tips, styles.TipStyle.Render(
			styles.TipTitleStyle.Render(tip.Title)+"\n"+tip.Body))
	}

	rows := []string{header}
	if len(tips) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tips...))
	}
	if v.Closing != nil {
		rows = append(rows, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
			styles.TitleStyle.Render(v.Closing.Title)+"\n"+
				v.Closing.Body+"\n"+
				styles.AccentStyle.Render(v.Closing.Prompt)))
	}

	hints := []string{"S", "skip"}
	if v.NextVisible {
		hints = append([]string{"n", "next"}, hints...)
	}
	rows = append(rows, RenderHelpLine(hints...))

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(styles.Accent).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
