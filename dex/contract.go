package dex

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Contract is the bound client the invoker talks to.
type Contract interface {
	Address() common.Address
	// Transact submits a mutating call and returns the pending transaction
	// without waiting for it to be mined.
	Transact(ctx context.Context, method string, args ...*big.Int) (*types.Transaction, error)
	// WaitConfirmed blocks until tx is mined. A failed receipt is reported as
	// ErrLedgerRejection.
	WaitConfirmed(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
	// Call runs a view method and returns its uint256 outputs in order.
	Call(ctx context.Context, method string) ([]*big.Int, error)
}

// Backend is what a bound client needs from the network access handle.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// BoundClient binds a ContractDescriptor to a backend and a signing handle.
type BoundClient struct {
	contract *bind.BoundContract
	backend  Backend
	opts     *bind.TransactOpts
	address  common.Address
}

var _ Contract = (*BoundClient)(nil)

// Bind creates the contract client for desc. opts may be nil for a
// read-only client.
func Bind(desc ContractDescriptor, backend Backend, opts *bind.TransactOpts) *BoundClient {
	return &BoundClient{
		contract: bind.NewBoundContract(desc.Address, desc.ABI, backend, backend, backend),
		backend:  backend,
		opts:     opts,
		address:  desc.Address,
	}
}

func (c *BoundClient) Address() common.Address { return c.address }

func (c *BoundClient) Transact(ctx context.Context, method string, args ...*big.Int) (*types.Transaction, error) {
	if c.opts == nil {
		return nil, fmt.Errorf("%w: read-only client", ErrNotConnected)
	}
	opts := *c.opts
	opts.Context = ctx

	params := make([]interface{}, len(args))
	for i, a := range args {
		params[i] = a
	}
	tx, err := c.contract.Transact(&opts, method, params...)
	if err != nil {
		return nil, Classify(err)
	}
	return tx, nil
}

func (c *BoundClient) WaitConfirmed(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, Classify(err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: transaction %s reverted in block %s",
			ErrLedgerRejection, tx.Hash().Hex(), receipt.BlockNumber)
	}
	return receipt, nil
}

func (c *BoundClient) Call(ctx context.Context, method string) ([]*big.Int, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, method); err != nil {
		return nil, Classify(err)
	}

	values := make([]*big.Int, 0, len(out))
	for i, o := range out {
		v, ok := o.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("%w: %s output %d is %T, want uint256", ErrSubmissionFailure, method, i, o)
		}
		values = append(values, v)
	}
	return values, nil
}
