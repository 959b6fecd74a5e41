// Package session holds the live connection to the pool: the network access
// handle, the authorization handle and the bound contract client.
package session

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"simple-dex-tui/dex"
	"simple-dex-tui/rpc"
	"simple-dex-tui/wallet"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Backend is the network access handle.
type Backend interface {
	dex.Backend
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// Session is one connected wallet bound to the pool contract.
type Session struct {
	Access      Backend
	Auth        *bind.TransactOpts
	Client      dex.Contract
	Account     common.Address
	ChainID     *big.Int
	RPCURL      string
	ConnectedAt time.Time

	mu       sync.Mutex
	inflight int
	retired  bool
	closed   bool
}

// IsConnected reports whether the session carries a bound client.
func (s *Session) IsConnected() bool {
	return s != nil && s.Client != nil
}

// Hold marks an invocation in flight on s. The access handle stays open
// until every hold is released, even after s is replaced or disconnected.
// ok is false once the handle has been closed.
func (s *Session) Hold() (release func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false
	}
	s.inflight++
	var once sync.Once
	return func() { once.Do(s.release) }, true
}

func (s *Session) release() {
	s.mu.Lock()
	s.inflight--
	closeNow := s.retired && s.inflight == 0 && !s.closed
	if closeNow {
		s.closed = true
	}
	s.mu.Unlock()
	if closeNow && s.Access != nil {
		s.Access.Close()
	}
}

// retire closes the access handle now, or when the last hold is released.
// It reports whether the handle was closed immediately.
func (s *Session) retire() bool {
	s.mu.Lock()
	s.retired = true
	closeNow := s.inflight == 0 && !s.closed
	if closeNow {
		s.closed = true
	}
	s.mu.Unlock()
	if closeNow && s.Access != nil {
		s.Access.Close()
	}
	return closeNow
}

// Options configures a Manager. Zero values select the real wallet
// detection, RPC dialing and contract binding.
type Options struct {
	Descriptor dex.ContractDescriptor
	RPCURL     string
	Detect     func() (wallet.Provider, error)
	Dial       func(ctx context.Context, url string) (Backend, error)
	Bind       func(desc dex.ContractDescriptor, b Backend, opts *bind.TransactOpts) dex.Contract
	Logger     *log.Logger
}

// Manager owns the current Session. Connect and Disconnect are the only
// writers.
type Manager struct {
	opts Options
	log  *log.Logger

	mu       sync.RWMutex
	current  *Session
	provider wallet.Provider
}

// NewManager creates a Manager with no session.
func NewManager(opts Options) *Manager {
	if opts.Dial == nil {
		opts.Dial = DialRPC
	}
	if opts.Bind == nil {
		opts.Bind = func(desc dex.ContractDescriptor, b Backend, auth *bind.TransactOpts) dex.Contract {
			return dex.Bind(desc, b, auth)
		}
	}
	if opts.Detect == nil {
		opts.Detect = func() (wallet.Provider, error) {
			return nil, fmt.Errorf("%w: no wallet configured", dex.ErrNoWalletDetected)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{opts: opts, log: logger.WithPrefix("session")}
}

// DialRPC is the default Dial, backed by rpc.ConnectContext.
func DialRPC(ctx context.Context, url string) (Backend, error) {
	result := rpc.ConnectContext(ctx, url)
	if result.Error != nil {
		return nil, result.Error
	}
	return result.Client, nil
}

// Detect looks for a wallet without connecting.
func (m *Manager) Detect() (wallet.Provider, error) {
	p, err := m.opts.Detect()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, dex.ErrNoWalletDetected
	}
	return p, nil
}

// Connect establishes a new session and replaces the current one.
func (m *Manager) Connect(ctx context.Context, auth wallet.Authorization) (*Session, error) {
	provider, err := m.Detect()
	if err != nil {
		m.log.Warn("no wallet detected", "err", err)
		return nil, err
	}

	m.mu.RLock()
	url := m.opts.RPCURL
	m.mu.RUnlock()

	backend, err := m.opts.Dial(ctx, url)
	if err != nil {
		m.log.Error("dial failed", "url", url, "err", err)
		return nil, fmt.Errorf("%w: dial %s: %w", dex.ErrSubmissionFailure, url, err)
	}

	account, err := provider.RequestAccounts(ctx, auth)
	if err != nil {
		backend.Close()
		m.log.Warn("account request denied", "kind", provider.Kind(), "err", err)
		return nil, err
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		backend.Close()
		m.log.Error("chain id failed", "err", err)
		return nil, fmt.Errorf("%w: chain id: %w", dex.ErrSubmissionFailure, err)
	}

	signer, err := provider.Signer(account, chainID)
	if err != nil {
		backend.Close()
		m.log.Warn("signer derivation failed", "account", account.Hex(), "err", err)
		return nil, err
	}

	s := &Session{
		Access:      backend,
		Auth:        signer,
		Client:      m.opts.Bind(m.opts.Descriptor, backend, signer),
		Account:     account,
		ChainID:     chainID,
		RPCURL:      url,
		ConnectedAt: time.Now(),
	}

	m.mu.Lock()
	prev := m.current
	m.current = s
	m.provider = provider
	m.mu.Unlock()

	if prev != nil && prev.Access != backend {
		if !prev.retire() {
			m.log.Debug("previous session still has invocations in flight", "account", prev.Account.Hex())
		}
	}

	m.log.Info("connected", "account", account.Hex(), "chain", chainID, "contract", m.opts.Descriptor.Address.Hex())
	return s, nil
}

// IsReady is true iff a session exists and its client is bound.
func (m *Manager) IsReady() bool {
	_, ok := m.Current()
	return ok
}

// Current returns the live session, if any.
func (m *Manager) Current() (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.current.IsConnected() {
		return nil, false
	}
	return m.current, true
}

// Disconnect drops the session and closes its access handle.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	prev := m.current
	m.current = nil
	m.provider = nil
	m.mu.Unlock()

	if prev != nil {
		prev.retire()
		m.log.Info("disconnected", "account", prev.Account.Hex())
	}
}

// SetRPCURL changes the endpoint used by the next Connect. The current
// session keeps its own access handle.
func (m *Manager) SetRPCURL(url string) {
	m.mu.Lock()
	m.opts.RPCURL = url
	m.mu.Unlock()
}

// RPCURL is the endpoint the next Connect dials.
func (m *Manager) RPCURL() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opts.RPCURL
}

// CheckRevocation invalidates the session when the wallet no longer holds
// the session account.
func (m *Manager) CheckRevocation(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	s, p := m.current, m.provider
	m.mu.RUnlock()

	if s == nil || p == nil || p.HasAccount(s.Account) {
		return nil
	}

	m.mu.Lock()
	if m.current == s {
		m.current = nil
		m.provider = nil
	}
	m.mu.Unlock()
	s.retire()

	m.log.Warn("wallet access revoked", "account", s.Account.Hex())
	return fmt.Errorf("%w: account %s no longer available", dex.ErrAuthorizationDenied, s.Account.Hex())
}
