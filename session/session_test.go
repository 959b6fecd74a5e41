package session

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"

	"simple-dex-tui/dex"
	"simple-dex-tui/wallet"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAccount = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

type fakeBackend struct {
	// unused methods panic
	dex.Backend

	chainID  int64
	chainErr error
	closed   atomic.Bool
}

func (b *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	if b.chainErr != nil {
		return nil, b.chainErr
	}
	return big.NewInt(b.chainID), nil
}

func (b *fakeBackend) Close() { b.closed.Store(true) }

type fakeProvider struct {
	kind    wallet.Kind
	account common.Address
	revoked atomic.Bool
}

func (p *fakeProvider) Kind() wallet.Kind        { return p.kind }
func (p *fakeProvider) Account() common.Address { return p.account }

func (p *fakeProvider) RequestAccounts(_ context.Context, auth wallet.Authorization) (common.Address, error) {
	if !auth.Approved {
		return common.Address{}, dex.ErrAuthorizationDenied
	}
	return p.account, nil
}

func (p *fakeProvider) Signer(account common.Address, _ *big.Int) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{From: account}, nil
}

func (p *fakeProvider) HasAccount(account common.Address) bool {
	return account == p.account && !p.revoked.Load()
}

type nopContract struct{ addr common.Address }

func (c nopContract) Address() common.Address { return c.addr }
func (c nopContract) Transact(context.Context, string, ...*big.Int) (*types.Transaction, error) {
	return nil, errors.New("not implemented")
}
func (c nopContract) WaitConfirmed(context.Context, *types.Transaction) (*types.Receipt, error) {
	return nil, errors.New("not implemented")
}
func (c nopContract) Call(context.Context, string) ([]*big.Int, error) {
	return nil, errors.New("not implemented")
}

type harness struct {
	provider *fakeProvider
	backends []*fakeBackend
	dialErr  error
	manager  *Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{provider: &fakeProvider{kind: wallet.KindPrivateKey, account: testAccount}}
	desc := dex.MustDescriptor("")
	h.manager = NewManager(Options{
		Descriptor: desc,
		RPCURL:     "http://fake",
		Detect: func() (wallet.Provider, error) {
			if h.provider == nil {
				return nil, dex.ErrNoWalletDetected
			}
			return h.provider, nil
		},
		Dial: func(context.Context, string) (Backend, error) {
			if h.dialErr != nil {
				return nil, h.dialErr
			}
			b := &fakeBackend{chainID: 11155111}
			h.backends = append(h.backends, b)
			return b, nil
		},
		Bind: func(desc dex.ContractDescriptor, _ Backend, _ *bind.TransactOpts) dex.Contract {
			return nopContract{addr: desc.Address}
		},
	})
	return h
}

func TestNotReadyBeforeConnect(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.manager.IsReady())
	_, ok := h.manager.Current()
	assert.False(t, ok)
}

func TestConnectNoWallet(t *testing.T) {
	h := newHarness(t)
	h.provider = nil

	_, err := h.manager.Connect(context.Background(), wallet.Authorization{Approved: true})
	assert.ErrorIs(t, err, dex.ErrNoWalletDetected)
	assert.False(t, h.manager.IsReady())
	assert.Empty(t, h.backends, "must not dial without a wallet")
}

func TestConnectAuthorizationDenied(t *testing.T) {
	h := newHarness(t)

	_, err := h.manager.Connect(context.Background(), wallet.Authorization{Approved: false})
	assert.ErrorIs(t, err, dex.ErrAuthorizationDenied)
	assert.False(t, h.manager.IsReady())
	require.Len(t, h.backends, 1)
	assert.True(t, h.backends[0].closed.Load())
}

func TestConnectDialFailure(t *testing.T) {
	h := newHarness(t)
	h.dialErr = errors.New("connection refused")

	_, err := h.manager.Connect(context.Background(), wallet.Authorization{Approved: true})
	assert.ErrorIs(t, err, dex.ErrSubmissionFailure)
	assert.False(t, h.manager.IsReady())
}

func TestConnectSuccess(t *testing.T) {
	h := newHarness(t)

	s, err := h.manager.Connect(context.Background(), wallet.Authorization{Approved: true})
	require.NoError(t, err)
	assert.True(t, h.manager.IsReady())
	assert.True(t, s.IsConnected())
	assert.Equal(t, testAccount, s.Account)
	assert.Equal(t, int64(11155111), s.ChainID.Int64())
	assert.Equal(t, common.HexToAddress(dex.DefaultAddress), s.Client.Address())
	assert.Equal(t, testAccount, s.Auth.From)
}

func TestConnectIsIdempotent(t *testing.T) {
	h := newHarness(t)
	auth := wallet.Authorization{Approved: true}

	first, err := h.manager.Connect(context.Background(), auth)
	require.NoError(t, err)
	second, err := h.manager.Connect(context.Background(), auth)
	require.NoError(t, err)

	cur, ok := h.manager.Current()
	require.True(t, ok)
	assert.Same(t, second, cur)
	assert.Equal(t, first.Account, second.Account)
	assert.Equal(t, first.ChainID, second.ChainID)
	assert.Equal(t, first.Client.Address(), second.Client.Address())
	assert.Equal(t, first.RPCURL, second.RPCURL)

	require.Len(t, h.backends, 2)
	assert.True(t, h.backends[0].closed.Load(), "replaced access handle is closed")
	assert.False(t, h.backends[1].closed.Load())
}

func TestDisconnect(t *testing.T) {
	h := newHarness(t)
	_, err := h.manager.Connect(context.Background(), wallet.Authorization{Approved: true})
	require.NoError(t, err)

	h.manager.Disconnect()
	assert.False(t, h.manager.IsReady())
	assert.True(t, h.backends[0].closed.Load())

	h.manager.Disconnect()
}

func TestCheckRevocation(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.manager.CheckRevocation(context.Background()))

	_, err := h.manager.Connect(context.Background(), wallet.Authorization{Approved: true})
	require.NoError(t, err)
	require.NoError(t, h.manager.CheckRevocation(context.Background()))
	assert.True(t, h.manager.IsReady())

	h.provider.revoked.Store(true)
	err = h.manager.CheckRevocation(context.Background())
	assert.ErrorIs(t, err, dex.ErrAuthorizationDenied)
	assert.False(t, h.manager.IsReady())
	assert.True(t, h.backends[0].closed.Load())
}

func TestSetRPCURL(t *testing.T) {
	h := newHarness(t)
	h.manager.SetRPCURL("http://other")
	assert.Equal(t, "http://other", h.manager.RPCURL())

	s, err := h.manager.Connect(context.Background(), wallet.Authorization{Approved: true})
	require.NoError(t, err)
	assert.Equal(t, "http://other", s.RPCURL)
}

func TestReplacedSessionStaysOpenWhileHeld(t *testing.T) {
	h := newHarness(t)
	auth := wallet.Authorization{Approved: true}

	first, err := h.manager.Connect(context.Background(), auth)
	require.NoError(t, err)
	release, ok := first.Hold()
	require.True(t, ok)

	_, err = h.manager.Connect(context.Background(), auth)
	require.NoError(t, err)
	require.Len(t, h.backends, 2)
	assert.False(t, h.backends[0].closed.Load(), "confirmation wait still needs the old handle")

	release()
	assert.True(t, h.backends[0].closed.Load())
	assert.False(t, h.backends[1].closed.Load())

	release()
	_, ok = first.Hold()
	assert.False(t, ok, "closed session cannot be held again")
}

func TestDisconnectWaitsForHolds(t *testing.T) {
	h := newHarness(t)
	s, err := h.manager.Connect(context.Background(), wallet.Authorization{Approved: true})
	require.NoError(t, err)

	releaseA, ok := s.Hold()
	require.True(t, ok)
	releaseB, ok := s.Hold()
	require.True(t, ok)

	h.manager.Disconnect()
	assert.False(t, h.manager.IsReady())
	assert.False(t, h.backends[0].closed.Load())

	releaseA()
	assert.False(t, h.backends[0].closed.Load())
	releaseB()
	assert.True(t, h.backends[0].closed.Load())
}

func TestRevokedSessionWaitsForHolds(t *testing.T) {
	h := newHarness(t)
	s, err := h.manager.Connect(context.Background(), wallet.Authorization{Approved: true})
	require.NoError(t, err)
	release, ok := s.Hold()
	require.True(t, ok)

	h.provider.revoked.Store(true)
	assert.ErrorIs(t, h.manager.CheckRevocation(context.Background()), dex.ErrAuthorizationDenied)
	assert.False(t, h.backends[0].closed.Load())

	release()
	assert.True(t, h.backends[0].closed.Load())
}
