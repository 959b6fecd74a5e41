package main

import (
	"math/big"

	"simple-dex-tui/invoker"
	"simple-dex-tui/rpc"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct{}

// clearClipboardMsg clears the copy feedback
type clearClipboardMsg struct{}

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// rpcConnectedMsg contains result of RPC connection attempt
type rpcConnectedMsg struct {
	client  *rpc.Client
	chainID *big.Int
	err     error
}

// rpcStatusMsg carries the latest block for the header
type rpcStatusMsg struct {
	status rpc.Status
}

// actionResultMsg is the result of one invocation, connect included
type actionResultMsg struct {
	result invoker.Result
}

// revocationTickMsg asks for a wallet revocation check
type revocationTickMsg struct{}

// revocationCheckedMsg reports the outcome of a revocation check
type revocationCheckedMsg struct {
	err error
}
