package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "missing.json"))

	def := DefaultConfig()
	assert.Equal(t, def.Contract.Address, cfg.Contract.Address)
	assert.Equal(t, def.RPCURLs, cfg.RPCURLs)
	assert.True(t, cfg.DiscardStale)
	assert.Equal(t, 15*time.Second, cfg.RevocationInterval)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.RPCURLs = append(cfg.RPCURLs, RPCUrl{Name: "Local", URL: "http://127.0.0.1:8545"})
	cfg.Wallet = WalletEntry{Keystore: "/tmp/keys", PrivateKey: "0xsecret"}
	cfg.DiscardStale = false
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "0xsecret")

	got := Load(path)
	assert.Len(t, got.RPCURLs, 2)
	assert.Equal(t, "Local", got.RPCURLs[1].Name)
	assert.Equal(t, "/tmp/keys", got.Wallet.Keystore)
	assert.Empty(t, got.Wallet.PrivateKey)
	assert.False(t, got.DiscardStale)
	assert.Equal(t, 15*time.Second, got.RevocationInterval)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SIMPLEDEX_WALLET_PRIVATE_KEY", "0xabc")
	t.Setenv("SIMPLEDEX_CONTRACT_ADDRESS", "0x000000000000000000000000000000000000dEaD")
	t.Setenv("SIMPLEDEX_REVOCATION_INTERVAL", "1m")

	cfg := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, "0xabc", cfg.Wallet.PrivateKey)
	assert.Equal(t, "0x000000000000000000000000000000000000dEaD", cfg.Contract.Address)
	assert.Equal(t, time.Minute, cfg.RevocationInterval)
}

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := LoadOrCreate(path)
	assert.Equal(t, DefaultConfig().Contract, cfg.Contract)

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestActiveRPC(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "http://env:8545")

	cfg := Config{RPCURLs: []RPCUrl{
		{Name: "A", URL: "http://a"},
		{Name: "B", URL: "http://b", Active: true},
	}}
	assert.Equal(t, "http://b", cfg.ActiveRPC())
	assert.Equal(t, "B", cfg.ActiveRPCName())

	require.True(t, cfg.Activate(0))
	assert.Equal(t, "http://a", cfg.ActiveRPC())
	assert.False(t, cfg.RPCURLs[1].Active)
	assert.False(t, cfg.Activate(5))

	assert.Equal(t, "http://env:8545", Config{}.ActiveRPC())
}
