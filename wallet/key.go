package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"simple-dex-tui/dex"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeyProvider signs with a raw private key taken from the environment.
// Authorization is an explicit confirmation; there is no passphrase.
type KeyProvider struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewKeyProvider parses a hex private key, with or without 0x prefix.
func NewKeyProvider(hexKey string) (*KeyProvider, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &KeyProvider{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

func (p *KeyProvider) Kind() Kind { return KindPrivateKey }

func (p *KeyProvider) Account() common.Address { return p.address }

func (p *KeyProvider) RequestAccounts(ctx context.Context, auth Authorization) (common.Address, error) {
	if err := ctx.Err(); err != nil {
		return common.Address{}, err
	}
	if !auth.Approved {
		return common.Address{}, fmt.Errorf("%w: request rejected", dex.ErrAuthorizationDenied)
	}
	return p.address, nil
}

func (p *KeyProvider) Signer(account common.Address, chainID *big.Int) (*bind.TransactOpts, error) {
	if account != p.address {
		return nil, fmt.Errorf("%w: account %s was not authorized", dex.ErrAuthorizationDenied, account.Hex())
	}
	opts, err := bind.NewKeyedTransactorWithChainID(p.key, chainID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dex.ErrAuthorizationDenied, err)
	}
	return opts, nil
}

func (p *KeyProvider) HasAccount(account common.Address) bool {
	return account == p.address
}
