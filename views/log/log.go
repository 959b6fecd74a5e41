package log

import (
	"fmt"

	"simple-dex-tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Height is the number of log lines shown for a screen of the given height:
// at most a third of the screen and never more than 15.
func Height(screen int) int {
	// header (3), nav (1), panel chrome (4), margins (2)
	available := max(5, screen-10)
	return min(available, screen/3, 15)
}

// Render renders the log panel. vp must already be sized with Height.
func Render(width int, ready bool, spinnerView string, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(max(0, width-2)).
		Height(vp.Height + 2)

	if !ready {
		return border.Render(title + "\n\ninitializing...\n" + spinnerView)
	}

	if vp.TotalLineCount() > vp.Height {
		title += lipgloss.NewStyle().
			Foreground(styles.CMuted).
			Render(fmt.Sprintf(" [%d%%]", int(vp.ScrollPercent()*100)))
	}

	return border.Render(title + "\n\n" + vp.View())
}
