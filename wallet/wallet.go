package wallet

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"simple-dex-tui/config"
	"simple-dex-tui/dex"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Kind identifies how a provider holds its key.
type Kind int

const (
	KindKeystore Kind = iota
	KindPrivateKey
)

func (k Kind) String() string {
	switch k {
	case KindKeystore:
		return "keystore"
	case KindPrivateKey:
		return "private key"
	default:
		return "unknown"
	}
}

// Authorization is the user's answer to an account request.
type Authorization struct {
	Approved   bool
	Passphrase string // keystore only
}

// Provider is the wallet capability found in the host environment.
type Provider interface {
	Kind() Kind
	// Account is the address a request would authorize. It is known before
	// authorization so the UI can show it in the prompt.
	Account() common.Address
	// RequestAccounts asks for access to the account. A rejected or failed
	// authorization wraps dex.ErrAuthorizationDenied.
	RequestAccounts(ctx context.Context, auth Authorization) (common.Address, error)
	// Signer derives the transaction-signing handle for an authorized account.
	Signer(account common.Address, chainID *big.Int) (*bind.TransactOpts, error)
	// HasAccount reports whether the account is still available.
	HasAccount(account common.Address) bool
}

// Detect looks for a wallet in the configuration. A private key takes
// precedence over a keystore directory.
func Detect(cfg config.WalletEntry) (Provider, error) {
	if key := strings.TrimSpace(cfg.PrivateKey); key != "" {
		p, err := NewKeyProvider(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", dex.ErrNoWalletDetected, err)
		}
		return p, nil
	}

	if dir := strings.TrimSpace(cfg.Keystore); dir != "" {
		p, err := NewKeystoreProvider(dir, cfg.Account)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", dex.ErrNoWalletDetected, err)
		}
		return p, nil
	}

	return nil, fmt.Errorf("%w: set wallet.keystore or SIMPLEDEX_WALLET_PRIVATE_KEY", dex.ErrNoWalletDetected)
}
