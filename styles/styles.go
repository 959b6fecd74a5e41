package styles

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	CBg      = lipgloss.Color("#0B0F14")
	CPanel   = lipgloss.Color("#0F1720")
	CBorder  = lipgloss.Color("#874BFD")
	CMuted   = lipgloss.Color("#8AA0B6")
	CText    = lipgloss.Color("#D6E2F0")
	CAccent  = lipgloss.Color("#7EE787") // success, connected
	CAccent2 = lipgloss.Color("#79C0FF") // selection
	CWarn    = lipgloss.Color("#FFA657") // failed invocation
	CError   = lipgloss.Color("#FF0000")
	COffline = lipgloss.Color("#c01c28")

	cButton       = lipgloss.Color("#888B7E")
	cButtonActive = lipgloss.Color("#F25D94")
	cButtonText   = lipgloss.Color("#FFF7DB")
)

// Page chrome
var (
	AppStyle = lipgloss.NewStyle().
			Background(CBg).
			Foreground(CText)

	PanelStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CBorder).
			Padding(1, 2)

	NavStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(CBorder).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().Foreground(CAccent2).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(CMuted)
	KeyStyle   = lipgloss.NewStyle().Foreground(CAccent).Bold(true)
)

// Pool page: trigger list and status region
var (
	TriggerStyle         = lipgloss.NewStyle().Foreground(CText)
	SelectedTriggerStyle = lipgloss.NewStyle().Foreground(CAccent2).Bold(true)

	StatusBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CBorder).
			Padding(0, 1)
	StatusOKStyle   = lipgloss.NewStyle().Foreground(CAccent).Bold(true)
	StatusFailStyle = lipgloss.NewStyle().Foreground(CWarn).Bold(true)
)

// Confirmation dialog
var (
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(CBorder).
			Padding(1, 0)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(cButtonText).
			Background(cButton).
			Padding(0, 3).
			MarginTop(1)

	ActiveButtonStyle = ButtonStyle.
				Background(cButtonActive).
				MarginRight(2).
				Underline(true)
)

// Key renders a hotkey for the nav bars.
func Key(s string) string {
	return KeyStyle.Render(s)
}
