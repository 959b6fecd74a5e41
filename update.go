package main

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"simple-dex-tui/config"
	"simple-dex-tui/dex"
	"simple-dex-tui/invoker"
	logview "simple-dex-tui/views/log"
	"simple-dex-tui/views/pool"
	"simple-dex-tui/views/settings"
	"simple-dex-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// -------------------- TEMP FORM STORAGE --------------------
// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	tempRPCFormName string
	tempRPCFormURL  string
)

func (m *model) createAddRPCForm() {
	tempRPCFormName = ""
	tempRPCFormURL = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("RPC Name").
				Description("A friendly name for this RPC endpoint").
				Value(&tempRPCFormName).
				Placeholder("Sepolia"),

			huh.NewInput().
				Title("RPC URL").
				Description("The complete RPC URL (https://... or wss://...)").
				Value(&tempRPCFormURL).
				Placeholder("https://ethereum-sepolia-rpc.publicnode.com").
				Validate(validateRPCURL),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.form.Init()
}

func (m *model) createEditRPCForm(idx int) {
	if idx < 0 || idx >= len(m.cfg.RPCURLs) {
		return
	}

	rpc := m.cfg.RPCURLs[idx]
	tempRPCFormName = rpc.Name
	tempRPCFormURL = rpc.URL

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("RPC Name").
				Value(&tempRPCFormName),

			huh.NewInput().
				Title("RPC URL").
				Value(&tempRPCFormURL).
				Validate(validateRPCURL),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.form.Init()
}

func validateRPCURL(s string) error {
	s = strings.TrimSpace(s)
	for _, scheme := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(s, scheme) {
			return nil
		}
	}
	return fmt.Errorf("url must start with http(s):// or ws(s)://")
}

// -------------------- UPDATE --------------------

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return m, nil

	case rpcConnectedMsg:
		m.rpcConnecting = false
		if m.rpcClient != nil {
			m.rpcClient.Close()
		}
		if msg.err != nil {
			m.rpcClient = nil
			m.rpcConnected = false
			m.addLog("error", fmt.Sprintf("RPC connection failed: `%s`", msg.err.Error()))
			return m, nil
		}
		m.rpcClient = msg.client
		m.chainID = msg.chainID
		m.rpcConnected = true
		m.addLog("info", fmt.Sprintf("RPC connected to `%s` (chain %s)", msg.client.URL, msg.chainID))
		return m, loadRPCStatus(m.rpcClient, m.chainID)

	case rpcStatusMsg:
		m.rpcStatus = msg.status
		if msg.status.Err != nil {
			m.addLog("warn", fmt.Sprintf("Block number failed: `%s`", msg.status.Err))
		}
		return m, nil

	case actionResultMsg:
		m.reconcile(msg.result)
		return m, nil

	case revocationTickMsg:
		cmds := []tea.Cmd{checkRevocation(m.sessions)}
		if m.rpcConnected {
			cmds = append(cmds, loadRPCStatus(m.rpcClient, m.chainID))
		}
		return m, tea.Batch(cmds...)

	case revocationCheckedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, dex.ErrAuthorizationDenied) {
				m.addLog("warn", "Wallet access revoked, session closed")
			} else {
				m.addLog("debug", fmt.Sprintf("Revocation check: %s", msg.err))
			}
		}
		return m, revocationTick(m.cfg.RevocationInterval)

	case clipboardCopiedMsg:
		m.copiedMsg = "Copiado al portapapeles"
		m.copiedMsgTime = time.Now()
		return m, clearClipboard()

	case clearClipboardMsg:
		if time.Since(m.copiedMsgTime) >= 2*time.Second {
			m.copiedMsg = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.logViewport.Width = max(0, msg.Width-6)
		m.logViewport.Height = logview.Height(msg.Height)
		if m.logReady {
			m.updateLogViewport()
		}
		// forms size themselves from the same message
	}

	switch {
	case m.authForm != nil:
		return m, m.updateAuthForm(msg)
	case m.amountForm != nil:
		return m, m.updateAmountForm(msg)
	case m.form != nil:
		return m, m.updateSettingsForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m, m.handleKey(keyMsg)
	}
	return m, nil
}

// reconcile folds an invocation result into the model. The status region
// itself reads the invoker slot, which already holds the winning result.
func (m *model) reconcile(res invoker.Result) {
	if m.pending > 0 {
		m.pending--
	}

	if res.OK() && res.Operation == dex.OpGetReserves && len(res.Values) == 2 {
		m.reserves = [2]*big.Int{res.Values[0], res.Values[1]}
	}

	line := fmt.Sprintf("#%d %s: %s", res.Seq, res.Operation, res.Message)
	switch {
	case res.Stale:
		m.addLog("debug", line+" (stale, discarded)")
	case res.OK():
		m.addLog("info", line)
	default:
		m.addLog("warn", line)
	}
}

// updateAuthForm drives the authorization prompt. Leaving it without
// approving is a rejection and is reported as such.
func (m *model) updateAuthForm(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.authForm = nil
		return m.startConnect(wallet.Authorization{})
	}

	form, cmd := m.authForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.authForm = f
		switch f.State {
		case huh.StateCompleted:
			m.authForm = nil
			return m.startConnect(pool.Authorization())
		case huh.StateAborted:
			m.authForm = nil
			return m.startConnect(wallet.Authorization{})
		}
	}
	return cmd
}

// updateAmountForm drives the amount prompt of a mutating operation.
// Cancelling it issues nothing.
func (m *model) updateAmountForm(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.amountForm = nil
		return nil
	}

	form, cmd := m.amountForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.amountForm = f
		switch f.State {
		case huh.StateCompleted:
			m.amountForm = nil
			return m.startInvoke(invoker.Request{Operation: m.formOp.Name, Amounts: pool.Amounts(m.formOp)})
		case huh.StateAborted:
			m.amountForm = nil
			return nil
		}
	}
	return cmd
}

func (m *model) updateSettingsForm(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.settingsMode = settings.ModeList
		m.form = nil
		return nil
	}

	form, cmd := m.form.Update(msg)
	f, ok := form.(*huh.Form)
	if !ok {
		return cmd
	}
	m.form = f

	switch f.State {
	case huh.StateCompleted:
		name, url := strings.TrimSpace(tempRPCFormName), strings.TrimSpace(tempRPCFormURL)
		if m.settingsMode == settings.ModeAdd && url != "" {
			if name == "" {
				name = url
			}
			m.cfg.RPCURLs = append(m.cfg.RPCURLs, config.RPCUrl{Name: name, URL: url})
			m.saveConfig()
			m.addLog("info", fmt.Sprintf("Added RPC endpoint: `%s` (%s)", name, url))
		} else if m.settingsMode == settings.ModeEdit && m.selectedRPCIdx < len(m.cfg.RPCURLs) {
			m.cfg.RPCURLs[m.selectedRPCIdx].Name = name
			m.cfg.RPCURLs[m.selectedRPCIdx].URL = url
			m.saveConfig()
			m.addLog("info", fmt.Sprintf("Updated RPC endpoint: `%s`", name))
		}
		m.settingsMode = settings.ModeList
		m.form = nil
		return m.applyRPC()
	case huh.StateAborted:
		m.settingsMode = settings.ModeList
		m.form = nil
		return nil
	}
	return cmd
}

// -------------------- KEYS --------------------

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showQR {
		switch msg.String() {
		case "esc", "enter", "x", "X":
			m.showQR = false
		case "ctrl+c":
			return tea.Quit
		}
		return nil
	}

	switch msg.String() {
	case "ctrl+c":
		return tea.Quit

	case "l", "L":
		m.logEnabled = !m.logEnabled
		m.saveConfig()
		if m.logEnabled {
			m.logReady = false
			return tea.Batch(initLogViewport(), m.logSpinner.Tick)
		}
		m.logBuffer.Reset()
		m.logReady = false
		return nil

	case "pgup", "pgdown", "pageup", "pagedown":
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return cmd
		}
		return nil
	}

	switch m.activePage {
	case config.PagePool:
		return m.handlePoolKey(msg)
	case config.PageSettings:
		return m.handleSettingsKey(msg)
	}
	return nil
}

func (m *model) handlePoolKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		return tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.triggers)-1 {
			m.selected++
		}

	case "enter", " ":
		return m.trigger()

	case "c", "C":
		st := m.status()
		if !st.Has {
			return nil
		}
		text := st.Message
		if st.TxHash != "" {
			text += " " + st.TxHash
		}
		m.addLog("info", "Copied status to clipboard")
		return copyToClipboard(text)

	case "x", "X":
		m.showQR = true

	case "d", "D":
		if m.sessions.IsReady() {
			m.sessions.Disconnect()
			m.addLog("info", "Wallet disconnected")
		}

	case "s", "S":
		m.activePage = config.PageSettings
		m.settingsMode = settings.ModeList
		m.selectedRPCIdx = 0
	}
	return nil
}

func (m *model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	if m.showRPCDeleteDialog {
		switch msg.String() {
		case "left", "right", "tab":
			m.deleteRPCDialogYesSelected = !m.deleteRPCDialogYesSelected
		case "enter":
			idx := m.deleteRPCDialogIdx
			if m.deleteRPCDialogYesSelected && idx >= 0 && idx < len(m.cfg.RPCURLs) {
				m.cfg.RPCURLs = append(m.cfg.RPCURLs[:idx], m.cfg.RPCURLs[idx+1:]...)
				if m.selectedRPCIdx >= len(m.cfg.RPCURLs) && m.selectedRPCIdx > 0 {
					m.selectedRPCIdx--
				}
				m.saveConfig()
				m.addLog("warn", fmt.Sprintf("Deleted RPC endpoint `%s`", m.deleteRPCDialogName))
				m.showRPCDeleteDialog = false
				return m.applyRPC()
			}
			m.showRPCDeleteDialog = false
		case "esc":
			m.showRPCDeleteDialog = false
		}
		return nil
	}

	switch msg.String() {
	case "esc":
		m.activePage = config.PagePool

	case "a", "A":
		m.settingsMode = settings.ModeAdd
		m.createAddRPCForm()

	case "e", "E":
		if len(m.cfg.RPCURLs) > 0 {
			m.settingsMode = settings.ModeEdit
			m.createEditRPCForm(m.selectedRPCIdx)
		}

	case "d", "D", "delete", "backspace":
		if m.selectedRPCIdx < len(m.cfg.RPCURLs) {
			m.showRPCDeleteDialog = true
			m.deleteRPCDialogYesSelected = true
			m.deleteRPCDialogIdx = m.selectedRPCIdx
			name := strings.TrimSpace(m.cfg.RPCURLs[m.selectedRPCIdx].Name)
			if name == "" {
				name = m.cfg.RPCURLs[m.selectedRPCIdx].URL
			}
			m.deleteRPCDialogName = name
		}

	case "up", "k":
		if m.selectedRPCIdx > 0 {
			m.selectedRPCIdx--
		}

	case "down", "j":
		if m.selectedRPCIdx < len(m.cfg.RPCURLs)-1 {
			m.selectedRPCIdx++
		}

	case "enter", " ":
		if !m.cfg.Activate(m.selectedRPCIdx) {
			return nil
		}
		m.rpcOverride = ""
		m.saveConfig()
		m.addLog("info", fmt.Sprintf("Activated RPC `%s`, reconnect the wallet to use it", m.cfg.ActiveRPC()))
		return m.applyRPC()
	}
	return nil
}
