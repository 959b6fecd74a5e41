package main

import (
	"fmt"
	"strings"

	"simple-dex-tui/config"
	"simple-dex-tui/helpers"
	"simple-dex-tui/styles"
	logview "simple-dex-tui/views/log"
	"simple-dex-tui/views/pool"
	"simple-dex-tui/views/settings"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func (m *model) renderRPCDeleteDialog() string {
	msg := helpers.FadeString("Are you sure you want to delete the RPC endpoint "+m.deleteRPCDialogName+"?", "#F25D94", "#EDFF82")
	question := lipgloss.NewStyle().Width(50).Align(lipgloss.Center).Render(msg)

	var okButton, cancelButton string
	if m.deleteRPCDialogYesSelected {
		okButton = styles.ActiveButtonStyle.Render("Yes")
		cancelButton = styles.ButtonStyle.Render("No")
	} else {
		okButton = styles.ButtonStyle.MarginRight(2).Render("Yes")
		cancelButton = styles.ActiveButtonStyle.MarginRight(0).Render("No")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, okButton, cancelButton)
	ui := lipgloss.JoinVertical(lipgloss.Center, question, buttons)

	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		styles.DialogStyle.Render(ui),
	)
}

// renderQRPanel shows the pool contract as an EIP-681 QR code so a phone
// wallet can open it.
func (m *model) renderQRPanel() string {
	chainID := m.chainID
	if s, ok := m.sessions.Current(); ok {
		chainID = s.ChainID
	}
	uri := helpers.ContractURI(m.descriptor.Address, chainID)

	content := styles.TitleStyle.Render("Pool contract") + "\n\n" +
		helpers.QRCode(uri) + "\n" +
		lipgloss.NewStyle().Foreground(cAccent).Render(uri) + "\n\n" +
		hintStyle.Render("Press x, Esc or Enter to close")

	centered := lipgloss.NewStyle().Width(max(0, m.w-8)).Align(lipgloss.Center).Render(content)
	return appStyle.Render(lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		panelStyle.Width(max(0, m.w-4)).Render(centered),
	))
}

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8) // panel padding

	var addrDisplay string
	if s, ok := m.sessions.Current(); ok {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cAccent2).
			Bold(true).
			Render("Wallet: " + helpers.FadeString(helpers.ShortenAddr(s.Account.Hex()), "#F25D94", "#EDFF82"))
	} else {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("Wallet: sin conectar")
	}

	statusIcon := "○"
	statusColor := styles.COffline
	var statusText string
	switch {
	case m.rpcURL == "":
		statusText = "No RPC"
	case m.rpcConnecting:
		statusText = "Connecting..."
	case !m.rpcConnected:
		statusText = "Connection Failed"
	default:
		statusIcon = "●"
		statusColor = cAccent
		statusText = m.cfg.ActiveRPCName()
		if m.rpcOverride != "" {
			statusText = "--rpc"
		}
		if statusText == "" {
			statusText = "Connected"
		}
		if m.rpcStatus.Block > 0 {
			statusText += fmt.Sprintf(" #%d", m.rpcStatus.Block)
		}
	}

	rpcDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	titleText := lipgloss.NewStyle().
		Foreground(cAccent).
		Bold(true).
		Render(helpers.FadeString("simple dex", "#7EE787", "#82CFFD"))

	addrWidth := lipgloss.Width(addrDisplay)
	rpcWidth := lipgloss.Width(rpcDisplay)
	titleWidth := lipgloss.Width(titleText)
	totalOtherWidth := addrWidth + rpcWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		headerLine = addrDisplay + "\n" + titleText + "\n" + rpcDisplay
	} else {
		// Wallet | Title (centered) | RPC
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding
		headerLine = addrDisplay + strings.Repeat(" ", max(1, leftPadding)) +
			titleText + strings.Repeat(" ", max(1, rightPadding)) + rpcDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

func (m *model) View() string {
	if m.showQR {
		return m.renderQRPanel()
	}

	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(m.globalHeader())

	var pageContent, nav string

	switch m.activePage {
	case config.PagePool:
		var content string
		switch {
		case m.authForm != nil:
			content = styles.TitleStyle.Render("Conectar Wallet") + "\n\n" + m.authForm.View()
		case m.amountForm != nil:
			content = styles.TitleStyle.Render(m.formOp.Label) + "\n\n" + m.amountForm.View()
		default:
			content = pool.Render(m.triggers, m.selected, m.sessionInfo(), m.status(), m.pending, m.spin.View())
			if m.copiedMsg != "" {
				content += "\n" + lipgloss.NewStyle().Foreground(cAccent).Bold(true).Render(m.copiedMsg)
			}
		}
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(content)
		nav = pool.Nav(m.w - 2)

	case config.PageSettings:
		if m.showRPCDeleteDialog {
			return m.renderRPCDeleteDialog()
		}
		content := settings.Render(m.cfg, m.selectedRPCIdx)
		if m.form != nil {
			content = styles.TitleStyle.Render("RPC Settings") + "\n\n" + m.form.View()
		}
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(content)
		nav = settings.Nav(m.w-2, m.settingsMode)
	}

	parts := []string{headerPanel, pageContent}
	if m.logEnabled {
		parts = append(parts, logview.Render(m.w, m.logReady, m.logSpinner.View(), m.logViewport))
	}
	parts = append(parts, nav)

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
