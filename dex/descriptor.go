package dex

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// DefaultAddress is the deployed SimpleDEX contract.
const DefaultAddress = "0x51f65464D9feeD4bA28Fd34b57fd27c9971Cd49b"

// ABIJSON is the SimpleDEX interface. Argument and return arity must match the
// deployed contract exactly.
const ABIJSON = `[
  {"type":"function","name":"initializePool","stateMutability":"nonpayable",
   "inputs":[{"name":"amountA","type":"uint256"},{"name":"amountB","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"addLiquidity","stateMutability":"nonpayable",
   "inputs":[{"name":"amountA","type":"uint256"},{"name":"amountB","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"removeLiquidity","stateMutability":"nonpayable",
   "inputs":[{"name":"amountA","type":"uint256"},{"name":"amountB","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"swapAForB","stateMutability":"nonpayable",
   "inputs":[{"name":"amountA","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"swapBForA","stateMutability":"nonpayable",
   "inputs":[{"name":"amountB","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"getReserves","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"uint256"},{"name":"","type":"uint256"}]},
  {"type":"function","name":"getPrice","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"tokenAEquivalent","type":"uint256"},{"name":"tokenBEquivalent","type":"uint256"}]}
]`

// ContractDescriptor pins the contract a session binds to. It is built once
// and never mutated.
type ContractDescriptor struct {
	Address common.Address
	ABI     abi.ABI
}

// NewDescriptor parses the SimpleDEX ABI and validates the contract address.
// An empty address selects DefaultAddress.
func NewDescriptor(address string) (ContractDescriptor, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		address = DefaultAddress
	}
	if !common.IsHexAddress(address) {
		return ContractDescriptor{}, fmt.Errorf("invalid contract address %q", address)
	}

	parsed, err := abi.JSON(strings.NewReader(ABIJSON))
	if err != nil {
		return ContractDescriptor{}, fmt.Errorf("parse contract abi: %w", err)
	}

	return ContractDescriptor{
		Address: common.HexToAddress(address),
		ABI:     parsed,
	}, nil
}

// MustDescriptor is NewDescriptor for package-level defaults and tests.
func MustDescriptor(address string) ContractDescriptor {
	d, err := NewDescriptor(address)
	if err != nil {
		panic(err)
	}
	return d
}
