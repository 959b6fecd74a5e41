package rpc

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

// DefaultTimeout bounds dialing and the chain id probe.
const DefaultTimeout = 8 * time.Second

// Client wraps an Ethereum RPC client
type Client struct {
	*ethclient.Client
	URL string
}

// ConnectResult holds the result of an RPC connection attempt
type ConnectResult struct {
	Client  *Client
	ChainID *big.Int
	Error   error
}

// Connect attempts to connect to an Ethereum RPC endpoint
func Connect(url string) ConnectResult {
	return ConnectWithTimeout(url, DefaultTimeout)
}

// ConnectWithTimeout attempts to connect with a custom timeout
func ConnectWithTimeout(url string, timeout time.Duration) ConnectResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return ConnectContext(ctx, url)
}

// ConnectContext dials url and asks for the chain id. HTTP endpoints dial
// lazily, so the chain id call is what proves the endpoint answers.
func ConnectContext(ctx context.Context, url string) ConnectResult {
	url = strings.TrimSpace(url)
	if url == "" {
		return ConnectResult{Error: errors.New("no RPC endpoint configured (set ETH_RPC_URL)")}
	}

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return ConnectResult{Error: err}
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return ConnectResult{Error: err}
	}

	return ConnectResult{
		Client: &Client{
			Client: client,
			URL:    url,
		},
		ChainID: chainID,
	}
}

// Status is a one-line health snapshot for the header.
type Status struct {
	URL      string
	ChainID  *big.Int
	Block    uint64
	LoadedAt time.Time
	Err      error
}

// LoadStatus reads the latest block number through an existing client.
func LoadStatus(client *Client, chainID *big.Int) Status {
	s := Status{ChainID: chainID, LoadedAt: time.Now()}
	if client == nil || client.Client == nil {
		s.Err = errors.New("no RPC client")
		return s
	}
	s.URL = client.URL

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	block, err := client.BlockNumber(ctx)
	if err != nil {
		s.Err = err
		return s
	}
	s.Block = block
	return s
}
