package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"simple-dex-tui/dex"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
)

// KeystoreProvider unlocks an account from an encrypted keystore directory.
type KeystoreProvider struct {
	ks      *keystore.KeyStore
	account accounts.Account
}

// NewKeystoreProvider opens dir and selects account, or the first account
// when account is empty.
func NewKeystoreProvider(dir, account string) (*KeystoreProvider, error) {
	ks := keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)
	accs := ks.Accounts()
	if len(accs) == 0 {
		return nil, fmt.Errorf("keystore %s has no accounts", dir)
	}

	if account == "" {
		return &KeystoreProvider{ks: ks, account: accs[0]}, nil
	}
	if !common.IsHexAddress(account) {
		return nil, fmt.Errorf("invalid account address %q", account)
	}
	want := common.HexToAddress(account)
	for _, a := range accs {
		if a.Address == want {
			return &KeystoreProvider{ks: ks, account: a}, nil
		}
	}
	return nil, fmt.Errorf("account %s not in keystore %s", want.Hex(), dir)
}

func (p *KeystoreProvider) Kind() Kind { return KindKeystore }

func (p *KeystoreProvider) Account() common.Address { return p.account.Address }

func (p *KeystoreProvider) RequestAccounts(ctx context.Context, auth Authorization) (common.Address, error) {
	if err := ctx.Err(); err != nil {
		return common.Address{}, err
	}
	if !auth.Approved {
		return common.Address{}, fmt.Errorf("%w: request rejected", dex.ErrAuthorizationDenied)
	}
	if err := p.ks.Unlock(p.account, auth.Passphrase); err != nil {
		if errors.Is(err, keystore.ErrDecrypt) {
			return common.Address{}, fmt.Errorf("%w: wrong passphrase", dex.ErrAuthorizationDenied)
		}
		return common.Address{}, fmt.Errorf("%w: %w", dex.ErrAuthorizationDenied, err)
	}
	return p.account.Address, nil
}

func (p *KeystoreProvider) Signer(account common.Address, chainID *big.Int) (*bind.TransactOpts, error) {
	if account != p.account.Address {
		return nil, fmt.Errorf("%w: account %s was not authorized", dex.ErrAuthorizationDenied, account.Hex())
	}
	opts, err := bind.NewKeyStoreTransactorWithChainID(p.ks, p.account, chainID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dex.ErrAuthorizationDenied, err)
	}
	return opts, nil
}

// HasAccount follows the keystore directory, so removing the key file
// revokes the account.
func (p *KeystoreProvider) HasAccount(account common.Address) bool {
	return p.ks.HasAddress(account)
}
