package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override (SIMPLEDEX_...).
const EnvPrefix = "SIMPLEDEX"

// Config represents the application configuration
type Config struct {
	RPCURLs            []RPCUrl      `json:"rpc_urls" mapstructure:"rpc_urls"`
	Contract           ContractEntry `json:"contract" mapstructure:"contract"`
	Wallet             WalletEntry   `json:"wallet" mapstructure:"wallet"`
	DiscardStale       bool          `json:"discard_stale" mapstructure:"discard_stale"`
	RevocationInterval time.Duration `json:"revocation_interval" mapstructure:"revocation_interval"`
	Logger             bool          `json:"logger" mapstructure:"logger"`
}

// RPCUrl represents an RPC endpoint
type RPCUrl struct {
	Name   string `json:"name" mapstructure:"name"`
	URL    string `json:"url" mapstructure:"url"`
	Active bool   `json:"active" mapstructure:"active"`
}

// ContractEntry points at the pool contract
type ContractEntry struct {
	Name    string `json:"name,omitempty" mapstructure:"name"`
	Address string `json:"address" mapstructure:"address"`
}

// WalletEntry tells the client where to find the signing key.
// PrivateKey is only read from the environment and never written back.
type WalletEntry struct {
	Keystore   string `json:"keystore,omitempty" mapstructure:"keystore"`
	Account    string `json:"account,omitempty" mapstructure:"account"`
	PrivateKey string `json:"-" mapstructure:"private_key"`
}

// Page identifies a TUI page
type Page int

const (
	PagePool Page = iota
	PageSettings
)

// DefaultPath is ~/.simpledex-config.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".simpledex-config.json")
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		RPCURLs: []RPCUrl{
			{
				Name:   "Sepolia",
				URL:    "https://ethereum-sepolia-rpc.publicnode.com",
				Active: true,
			},
		},
		Contract: ContractEntry{
			Name:    "SimpleDEX",
			Address: "0x51f65464D9feeD4bA28Fd34b57fd27c9971Cd49b",
		},
		DiscardStale:       true,
		RevocationInterval: 15 * time.Second,
		Logger:             false,
	}
}

// NewViper returns a viper instance with defaults and SIMPLEDEX_ env
// overrides registered. Callers may bind flags to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	urls := make([]map[string]interface{}, 0, len(def.RPCURLs))
	for _, r := range def.RPCURLs {
		urls = append(urls, map[string]interface{}{"name": r.Name, "url": r.URL, "active": r.Active})
	}
	v.SetDefault("rpc_urls", urls)
	v.SetDefault("contract.name", def.Contract.Name)
	v.SetDefault("contract.address", def.Contract.Address)
	v.SetDefault("wallet.keystore", "")
	v.SetDefault("wallet.account", "")
	v.SetDefault("wallet.private_key", "")
	v.SetDefault("discard_stale", def.DiscardStale)
	v.SetDefault("revocation_interval", def.RevocationInterval)
	v.SetDefault("logger", def.Logger)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config from the specified path
func Load(path string) Config {
	return LoadWith(NewViper(), path)
}

// LoadWith reads path into v and decodes the merged result. A missing or
// invalid file leaves the defaults (and env/flag overrides) in place.
func LoadWith(v *viper.Viper, path string) Config {
	v.SetConfigFile(path)
	v.SetConfigType("json")
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultConfig()
	}
	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	return LoadOrCreateWith(NewViper(), path)
}

// LoadOrCreateWith is LoadOrCreate on a caller-provided viper instance.
func LoadOrCreateWith(v *viper.Viper, path string) Config {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		_ = Save(path, DefaultConfig())
	}
	return LoadWith(v, path)
}

// ActiveRPC returns the URL of the active endpoint, falling back to the
// first one and then to ETH_RPC_URL.
func (c Config) ActiveRPC() string {
	for _, r := range c.RPCURLs {
		if r.Active && r.URL != "" {
			return r.URL
		}
	}
	if len(c.RPCURLs) > 0 && c.RPCURLs[0].URL != "" {
		return c.RPCURLs[0].URL
	}
	return strings.TrimSpace(os.Getenv("ETH_RPC_URL"))
}

// ActiveRPCName returns the name of the active endpoint, if any.
func (c Config) ActiveRPCName() string {
	url := c.ActiveRPC()
	for _, r := range c.RPCURLs {
		if r.URL == url {
			return r.Name
		}
	}
	return ""
}

// Activate marks idx as the only active endpoint.
func (c *Config) Activate(idx int) bool {
	if idx < 0 || idx >= len(c.RPCURLs) {
		return false
	}
	for i := range c.RPCURLs {
		c.RPCURLs[i].Active = i == idx
	}
	return true
}
