package main

import (
	"math/big"
	"path/filepath"
	"testing"

	"simple-dex-tui/config"
	"simple-dex-tui/dex"
	"simple-dex-tui/invoker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(t *testing.T) *model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.RPCURLs = nil
	m := newModel(cfg, filepath.Join(t.TempDir(), "config.json"), "")
	return &m
}

func selectTrigger(t *testing.T, m *model, operation string) {
	t.Helper()
	for i, tr := range m.triggers {
		if tr.Operation == operation {
			m.selected = i
			return
		}
	}
	t.Fatalf("no trigger for %q", operation)
}

// run executes cmd and feeds its message back into Update.
func run(t *testing.T, m *model, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, actionResultMsg{}, msg)
	m.Update(msg)
}

func TestTriggersListConnectThenOperations(t *testing.T) {
	m := testModel(t)
	require.Len(t, m.triggers, len(dex.Operations)+1)
	assert.Empty(t, m.triggers[0].Operation)
	assert.Equal(t, dex.OpGetPrice, m.triggers[len(m.triggers)-1].Operation)
}

func TestConnectWithoutWalletShowsNoWallet(t *testing.T) {
	m := testModel(t)
	m.selected = 0

	cmd := m.trigger()
	assert.Nil(t, m.authForm, "no authorization prompt without a wallet")
	assert.Equal(t, 1, m.pending)

	run(t, m, cmd)
	assert.Equal(t, 0, m.pending)
	st := m.status()
	assert.True(t, st.Has)
	assert.False(t, st.OK)
	assert.Equal(t, invoker.MsgNoWallet, st.Message)
}

func TestOperationsWhileDisconnectedShowNotConnected(t *testing.T) {
	m := testModel(t)

	for _, op := range []string{dex.OpSwapAForB, dex.OpGetReserves} {
		selectTrigger(t, m, op)
		cmd := m.trigger()
		assert.Nil(t, m.amountForm, "no amount form while disconnected")
		run(t, m, cmd)
		assert.Equal(t, invoker.MsgNotConnected, m.status().Message)
	}
}

func TestConnectWithPrivateKeyOpensAuthorization(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Wallet.PrivateKey = devKey
	m := newModel(cfg, filepath.Join(t.TempDir(), "config.json"), "")

	cmd := m.trigger()
	assert.Nil(t, cmd)
	assert.NotNil(t, m.authForm)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.authForm)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.pending)
}

func TestReconcileKeepsReservesForQuotes(t *testing.T) {
	m := testModel(t)
	m.pending = 1

	a, b := big.NewInt(500), big.NewInt(2000)
	m.Update(actionResultMsg{result: invoker.Result{
		Seq:       1,
		Operation: dex.OpGetReserves,
		Outcome:   invoker.Success,
		Values:    []*big.Int{a, b},
	}})
	assert.Equal(t, 0, m.pending)
	assert.Equal(t, a, m.reserves[0])
	assert.Equal(t, b, m.reserves[1])

	op, _ := dex.Lookup(dex.OpSwapAForB)
	quote := m.quoteFunc(op)
	require.NotNil(t, quote)
	assert.Contains(t, quote("abc"), "inválida")

	op, _ = dex.Lookup(dex.OpAddLiquidity)
	assert.Nil(t, m.quoteFunc(op))
}

func TestKeysNavigateAndToggle(t *testing.T) {
	m := testModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.selected)
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.selected)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.True(t, m.showQR)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showQR)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Equal(t, config.PageSettings, m.activePage)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, config.PagePool, m.activePage)
}

func TestViewRendersStatusRegion(t *testing.T) {
	m := testModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	selectTrigger(t, m, dex.OpGetPrice)
	run(t, m, m.trigger())

	view := m.View()
	assert.Contains(t, view, "Obtener Precio")
	assert.Contains(t, view, invoker.MsgNotConnected)
}

func TestRPCOverrideIsNeverSaved(t *testing.T) {
	cfg := config.DefaultConfig()
	path := filepath.Join(t.TempDir(), "config.json")
	m := newModel(cfg, path, "http://127.0.0.1:8545")
	assert.Equal(t, "http://127.0.0.1:8545", m.rpcURL)
	assert.Equal(t, "http://127.0.0.1:8545", m.sessions.RPCURL())

	// toggling the log panel saves the config
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})

	saved := config.Load(path)
	require.Len(t, saved.RPCURLs, 1)
	assert.Equal(t, cfg.RPCURLs[0].URL, saved.RPCURLs[0].URL)
	assert.True(t, saved.Logger)
}

func TestActivatingEndpointDropsRPCOverride(t *testing.T) {
	cfg := config.DefaultConfig()
	m := newModel(cfg, filepath.Join(t.TempDir(), "config.json"), "http://127.0.0.1:8545")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd, "header redials the activated endpoint")
	assert.Empty(t, m.rpcOverride)
	assert.Equal(t, cfg.RPCURLs[0].URL, m.rpcURL)
	assert.Equal(t, cfg.RPCURLs[0].URL, m.sessions.RPCURL())
}

func TestDeletingActiveEndpointRetargetsSession(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.RPCURLs = []config.RPCUrl{
		{Name: "first", URL: "http://127.0.0.1:8545"},
		{Name: "second", URL: "http://127.0.0.1:9545", Active: true},
	}
	m := newModel(cfg, filepath.Join(t.TempDir(), "config.json"), "")
	require.Equal(t, "http://127.0.0.1:9545", m.sessions.RPCURL())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.True(t, m.showRPCDeleteDialog)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, m.cfg.RPCURLs, 1)
	assert.NotNil(t, cmd)
	assert.Equal(t, "http://127.0.0.1:8545", m.rpcURL)
	assert.Equal(t, "http://127.0.0.1:8545", m.sessions.RPCURL())
	assert.True(t, m.rpcConnecting)
}
