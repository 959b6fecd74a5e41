package dex

import (
	"errors"
	"fmt"
	"strings"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Error taxonomy shared by the session manager and the invoker.
var (
	ErrNoWalletDetected    = errors.New("no wallet detected")
	ErrAuthorizationDenied = errors.New("authorization denied")
	ErrNotConnected        = errors.New("not connected")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrSubmissionFailure   = errors.New("submission failure")
	ErrLedgerRejection     = errors.New("ledger rejection")
)

// Classify maps an error coming out of go-ethereum to ErrLedgerRejection when
// the contract reverted, or ErrSubmissionFailure otherwise. Errors that are
// already classified are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrLedgerRejection) || errors.Is(err, ErrSubmissionFailure) {
		return err
	}
	if isRevert(err) {
		return fmt.Errorf("%w: %w", ErrLedgerRejection, err)
	}
	return fmt.Errorf("%w: %w", ErrSubmissionFailure, err)
}

func isRevert(err error) bool {
	var dataErr gethrpc.DataError
	if errors.As(err, &dataErr) && dataErr.ErrorData() != nil {
		return true
	}
	// "execution reverted", "transaction reverted", "reverted with reason"
	return strings.Contains(strings.ToLower(err.Error()), "revert")
}
