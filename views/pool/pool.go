package pool

import (
	"fmt"
	"strings"
	"time"

	"simple-dex-tui/dex"
	"simple-dex-tui/helpers"
	"simple-dex-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// ConnectLabel is the label of the first trigger.
const ConnectLabel = "Conectar Wallet"

// Trigger is one row of the action list. Operation is empty for Connect.
type Trigger struct {
	Label     string
	Operation string
}

// Triggers returns Connect followed by every pool operation.
func Triggers() []Trigger {
	out := []Trigger{{Label: ConnectLabel}}
	for _, op := range dex.Operations {
		out = append(out, Trigger{Label: op.Label, Operation: op.Name})
	}
	return out
}

// Status is what the status region shows.
type Status struct {
	Has     bool
	OK      bool
	Message string
	TxHash  string
	At      time.Time
}

// Session is the header line of the page.
type Session struct {
	Connected bool
	Account   string
	ChainID   string
	Contract  string
}

// Nav returns the navigation bar for the pool view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " run",
		styles.Key("c") + " copy",
		styles.Key("x") + " qr",
		styles.Key("d") + " disconnect",
		styles.Key("s") + " settings",
		styles.Key("l") + " debug log",
		styles.Key("Esc") + " quit",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the action list and the status region.
func Render(triggers []Trigger, selected int, sess Session, status Status, pending int, spinnerView string) string {
	lines := []string{styles.TitleStyle.Render("SimpleDEX"), ""}

	muted := styles.MutedStyle
	if sess.Connected {
		lines = append(lines,
			muted.Render("Cuenta:   ")+helpers.FadeString(helpers.ShortenAddr(sess.Account), "#F25D94", "#EDFF82"),
			muted.Render("Chain:    ")+sess.ChainID,
		)
	} else {
		lines = append(lines, muted.Render("Cuenta:   sin conectar"))
	}
	lines = append(lines, muted.Render("Contrato: ")+sess.Contract, "")

	for i, t := range triggers {
		marker, label := muted.Render("○ "), styles.TriggerStyle
		if t.Operation == "" {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
		}
		if i == selected {
			marker, label = styles.SelectedTriggerStyle.Render("▶ "), styles.SelectedTriggerStyle
		}
		lines = append(lines, marker+label.Render(t.Label))
	}

	lines = append(lines, "", RenderStatus(status, pending, spinnerView))
	return strings.Join(lines, "\n")
}

// RenderStatus renders the single text output region.
func RenderStatus(status Status, pending int, spinnerView string) string {
	var msg string
	switch {
	case !status.Has:
		msg = styles.MutedStyle.Render("—")
	case status.OK:
		msg = styles.StatusOKStyle.Render(status.Message)
	default:
		msg = styles.StatusFailStyle.Render(status.Message)
	}

	var meta []string
	if status.TxHash != "" {
		meta = append(meta, "tx "+helpers.ShortenAddr(status.TxHash))
	}
	if status.Has {
		meta = append(meta, helpers.CompletedAt(status.At))
	}
	if pending > 0 {
		meta = append(meta, fmt.Sprintf("%s %d en curso", spinnerView, pending))
	}

	if len(meta) > 0 {
		msg += "\n" + styles.MutedStyle.Render(strings.Join(meta, " · "))
	}
	return styles.StatusBoxStyle.Render(msg)
}
