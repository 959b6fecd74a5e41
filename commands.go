package main

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"simple-dex-tui/config"
	"simple-dex-tui/dex"
	"simple-dex-tui/helpers"
	"simple-dex-tui/invoker"
	"simple-dex-tui/rpc"
	"simple-dex-tui/session"
	"simple-dex-tui/views/pool"
	"simple-dex-tui/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// connectRPC establishes an RPC connection to the Ethereum node
func connectRPC(url string) tea.Cmd {
	return func() tea.Msg {
		result := rpc.Connect(url)
		return rpcConnectedMsg{client: result.Client, chainID: result.ChainID, err: result.Error}
	}
}

// loadRPCStatus reads the latest block for the header
func loadRPCStatus(client *rpc.Client, chainID *big.Int) tea.Cmd {
	return func() tea.Msg {
		return rpcStatusMsg{status: rpc.LoadStatus(client, chainID)}
	}
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// connectWallet runs the session connect in its own goroutine. The sequence
// number is taken by the caller when the trigger fires.
func connectWallet(inv *invoker.Invoker, seq uint64, auth wallet.Authorization) tea.Cmd {
	return func() tea.Msg {
		return actionResultMsg{result: inv.Connect(context.Background(), seq, auth)}
	}
}

// invokeOperation runs one pool operation to completion. Confirmation waits
// are not cancelled.
func invokeOperation(inv *invoker.Invoker, seq uint64, req invoker.Request) tea.Cmd {
	return func() tea.Msg {
		return actionResultMsg{result: inv.Invoke(context.Background(), seq, req)}
	}
}

// revocationTick schedules the next revocation check
func revocationTick(every time.Duration) tea.Cmd {
	if every <= 0 {
		return nil
	}
	return tea.Tick(every, func(time.Time) tea.Msg {
		return revocationTickMsg{}
	})
}

// checkRevocation asks the session manager whether the wallet still holds
// the session account
func checkRevocation(sessions *session.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpc.DefaultTimeout)
		defer cancel()
		return revocationCheckedMsg{err: sessions.CheckRevocation(ctx)}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return nil
		}
		return clipboardCopiedMsg{}
	}
}

// clearClipboard waits 2 seconds then clears the clipboard feedback
func clearClipboard() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearClipboardMsg{}
	})
}

// -------------------- HELPER METHODS --------------------

// addLog writes to the diagnostic logger
func (m *model) addLog(logType, message string) {
	if m.logger == nil {
		return
	}
	switch logType {
	case "error":
		m.logger.Error(message)
	case "warn", "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Info(message)
	}
	if m.logReady {
		m.updateLogViewport()
	}
}

// updateLogViewport refreshes the log panel content and keeps it scrolled to
// the newest line
func (m *model) updateLogViewport() {
	if m.logBuffer == nil {
		return
	}
	m.logViewport.SetContent(m.logBuffer.String())
	m.logViewport.GotoBottom()
}

// saveConfig persists the settings the TUI can change
func (m *model) saveConfig() {
	m.cfg.Logger = m.logEnabled
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.addLog("error", fmt.Sprintf("Saving config failed: `%s`", err))
	}
}

// applyRPC points the header and the next wallet connect at the endpoint
// in effect, redialing the header client when it changed.
func (m *model) applyRPC() tea.Cmd {
	url := m.rpcOverride
	if url == "" {
		url = m.cfg.ActiveRPC()
	}
	if url == m.rpcURL {
		return nil
	}

	m.rpcURL = url
	m.sessions.SetRPCURL(url)
	m.rpcConnected = false
	if url == "" {
		if m.rpcClient != nil {
			m.rpcClient.Close()
			m.rpcClient = nil
		}
		m.rpcConnecting = false
		m.addLog("warn", "No RPC endpoint left")
		return nil
	}
	m.rpcConnecting = true
	return connectRPC(url)
}

// trigger fires the selected row of the action list
func (m *model) trigger() tea.Cmd {
	if m.selected < 0 || m.selected >= len(m.triggers) {
		return nil
	}
	t := m.triggers[m.selected]

	if t.Operation == "" {
		provider, err := m.sessions.Detect()
		if err != nil {
			// no form to show; let the invoker publish the failure
			return m.startConnect(wallet.Authorization{})
		}
		m.authForm = pool.CreateAuthForm(provider.Kind(), provider.Account().Hex())
		return nil
	}

	op, ok := dex.Lookup(t.Operation)
	if !ok {
		return nil
	}
	if !op.Mutating || !m.sessions.IsReady() {
		return m.startInvoke(invoker.Request{Operation: op.Name})
	}

	m.formOp = op
	m.amountForm = pool.CreateAmountForm(op, m.quoteFunc(op))
	return nil
}

// startConnect takes a sequence number and dispatches the connect
func (m *model) startConnect(auth wallet.Authorization) tea.Cmd {
	seq := m.invoker.Begin()
	m.pending++
	m.addLog("info", fmt.Sprintf("Connecting wallet (#%d)", seq))
	return connectWallet(m.invoker, seq, auth)
}

// startInvoke takes a sequence number and dispatches the invocation
func (m *model) startInvoke(req invoker.Request) tea.Cmd {
	seq := m.invoker.Begin()
	m.pending++
	m.addLog("info", fmt.Sprintf("Invoking `%s` %v (#%d)", req.Operation, req.Amounts, seq))
	return invokeOperation(m.invoker, seq, req)
}

// quoteFunc describes a swap amount with an estimate from the last reserves
// read. Other operations get no quote.
func (m *model) quoteFunc(op dex.Operation) func(string) string {
	var in, out *big.Int
	var inSym, outSym string
	switch op.Name {
	case dex.OpSwapAForB:
		in, out, inSym, outSym = m.reserves[0], m.reserves[1], "TokenA", "TokenB"
	case dex.OpSwapBForA:
		in, out, inSym, outSym = m.reserves[1], m.reserves[0], "TokenB", "TokenA"
	default:
		return nil
	}
	if in == nil || out == nil {
		return func(string) string { return "Obtén las reservas para ver una estimación" }
	}
	return func(amount string) string {
		amountIn, err := dex.ParseAmount(amount, dex.Decimals)
		if err != nil {
			return "Cantidad inválida"
		}
		q, err := helpers.EstimateSwap(in, out, amountIn)
		if err != nil {
			return err.Error()
		}
		return "Estimación: " + helpers.FormatSwapQuote(q, inSym, outSym, dex.Decimals)
	}
}

// status reads the live result for the status region
func (m *model) status() pool.Status {
	res, ok := m.invoker.Status()
	if !ok {
		return pool.Status{}
	}
	st := pool.Status{Has: true, OK: res.OK(), Message: res.Message, At: res.At}
	if res.TxHash != (common.Hash{}) {
		st.TxHash = res.TxHash.Hex()
	}
	return st
}

// sessionInfo reads the current session for the pool page
func (m *model) sessionInfo() pool.Session {
	info := pool.Session{Contract: m.descriptor.Address.Hex()}
	if s, ok := m.sessions.Current(); ok {
		info.Connected = true
		info.Account = s.Account.Hex()
		if s.ChainID != nil {
			info.ChainID = s.ChainID.String()
		}
	}
	return info
}
