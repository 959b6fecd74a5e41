package settings

import (
	"strings"

	"simple-dex-tui/config"
	"simple-dex-tui/helpers"
	"simple-dex-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Mode is what the settings page is doing.
type Mode string

const (
	ModeList Mode = "list"
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// Nav returns the navigation bar for settings view
func Nav(width int, mode Mode) string {
	var left string
	if mode == ModeAdd || mode == ModeEdit {
		left = strings.Join([]string{
			styles.Key("Enter") + " next/save",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " select",
			styles.Key("Enter") + " activate",
			styles.Key("a") + " add",
			styles.Key("e") + " edit",
			styles.Key("d") + " delete",
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " back",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the endpoint list followed by the read-only pool and
// wallet settings.
func Render(cfg config.Config, selectedIdx int) string {
	muted := lipgloss.NewStyle().Foreground(styles.CMuted)
	lines := []string{styles.TitleStyle.Render("RPC Settings"), ""}

	if len(cfg.RPCURLs) == 0 {
		lines = append(lines,
			muted.Render("No RPC URLs configured."),
			"",
			muted.Render("Press ")+styles.Key("a")+muted.Render(" to add one, or set ETH_RPC_URL."),
		)
	}

	for i, rpc := range cfg.RPCURLs {
		marker := muted.Render("○ ")
		if rpc.Active {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
		}
		nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
		if i == selectedIdx {
			nameStyle = nameStyle.Foreground(styles.CAccent2).Bold(true)
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
		}
		lines = append(lines, marker+nameStyle.Render(rpc.Name), "  "+muted.Render(rpc.URL), "")
	}

	lines = append(lines, styles.TitleStyle.Render("Pool"), "")
	lines = append(lines, muted.Render("Contrato:  ")+cfg.Contract.Address)
	lines = append(lines, muted.Render("Wallet:    ")+walletSummary(cfg.Wallet))
	stale := "última respuesta gana"
	if cfg.DiscardStale {
		stale = "descarta respuestas antiguas"
	}
	lines = append(lines, muted.Render("Estado:    ")+stale)
	lines = append(lines, muted.Render("Revisión:  ")+cfg.RevocationInterval.String())

	return strings.Join(lines, "\n")
}

func walletSummary(w config.WalletEntry) string {
	switch {
	case w.PrivateKey != "":
		return "clave privada (entorno)"
	case w.Keystore != "" && w.Account != "":
		return w.Keystore + " · " + helpers.ShortenAddr(w.Account)
	case w.Keystore != "":
		return w.Keystore
	default:
		return "sin configurar"
	}
}
