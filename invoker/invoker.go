// Package invoker runs pool operations through one uniform protocol:
// readiness check, amount formatting, submission, confirmation wait and
// publication of a single status result.
package invoker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"simple-dex-tui/dex"
	"simple-dex-tui/session"
	"simple-dex-tui/wallet"

	"github.com/charmbracelet/log"
)

// OpConnect names connect results in the status slot.
const OpConnect = "connect"

// Messages shown for taxonomy failures that are not tied to one operation.
const (
	MsgConnected        = "Conectado a la wallet"
	MsgConnectFailed    = "Error al conectar la wallet"
	MsgNoWallet         = "Por favor, configura una wallet"
	MsgAuthDenied       = "Autorización rechazada"
	MsgNotConnected     = "Conecta tu wallet primero"
	MsgInvalidAmount    = "Cantidad inválida"
	MsgUnknownOperation = "Operación desconocida"
)

// Request is one button press.
type Request struct {
	Operation string
	Amounts   []string
}

// Sessions is the part of the session manager the invoker needs.
type Sessions interface {
	Connect(ctx context.Context, auth wallet.Authorization) (*session.Session, error)
	Current() (*session.Session, bool)
}

// Invoker executes requests against the current session.
type Invoker struct {
	sessions Sessions
	slot     *Slot
	log      *log.Logger
	seq      atomic.Uint64
}

// New creates an Invoker publishing into slot.
func New(sessions Sessions, slot *Slot, logger *log.Logger) *Invoker {
	if slot == nil {
		slot = NewSlot(true)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Invoker{sessions: sessions, slot: slot, log: logger.WithPrefix("invoker")}
}

// Begin allocates the sequence number of a new invocation. Call it when the
// action is triggered, not when it completes.
func (i *Invoker) Begin() uint64 {
	return i.seq.Add(1)
}

// Status returns the live result.
func (i *Invoker) Status() (Result, bool) {
	return i.slot.Current()
}

// Connect runs the session connect and publishes its outcome.
func (i *Invoker) Connect(ctx context.Context, seq uint64, auth wallet.Authorization) Result {
	res := Result{Seq: seq, Operation: OpConnect}

	s, err := i.sessions.Connect(ctx, auth)
	switch {
	case err == nil:
		res.Outcome = Success
		res.Message = MsgConnected
		i.log.Info("wallet connected", "seq", seq, "account", s.Account.Hex())
	case errors.Is(err, dex.ErrNoWalletDetected):
		res = failure(res, MsgNoWallet, err)
	case errors.Is(err, dex.ErrAuthorizationDenied):
		res = failure(res, MsgAuthDenied, err)
	default:
		res = failure(res, MsgConnectFailed, err)
	}
	return i.publish(res)
}

// Invoke runs one operation from the table to completion. It never returns
// an error: every failure is folded into the published Result.
func (i *Invoker) Invoke(ctx context.Context, seq uint64, req Request) Result {
	res := Result{Seq: seq, Operation: req.Operation}

	op, ok := dex.Lookup(req.Operation)
	if !ok {
		return i.publish(failure(res, MsgUnknownOperation, fmt.Errorf("unknown operation %q", req.Operation)))
	}

	s, ok := i.sessions.Current()
	if !ok || !s.IsConnected() {
		return i.publish(failure(res, MsgNotConnected, dex.ErrNotConnected))
	}
	release, ok := s.Hold()
	if !ok {
		return i.publish(failure(res, MsgNotConnected, fmt.Errorf("%w: session closed", dex.ErrNotConnected)))
	}
	defer release()

	if !op.Mutating {
		return i.publish(i.read(ctx, s, op, res))
	}
	return i.publish(i.write(ctx, s, op, req.Amounts, res))
}

func (i *Invoker) write(ctx context.Context, s *session.Session, op dex.Operation, amounts []string, res Result) Result {
	args, err := dex.ParseAmounts(op, amounts)
	if err != nil {
		return failure(res, MsgInvalidAmount, err)
	}

	tx, err := s.Client.Transact(ctx, op.Name, args...)
	if err != nil {
		return failure(res, op.Failure, dex.Classify(err))
	}
	res.TxHash = tx.Hash()
	i.log.Info("submitted", "seq", res.Seq, "op", op.Name, "tx", tx.Hash().Hex())

	receipt, err := s.Client.WaitConfirmed(ctx, tx)
	if err != nil {
		return failure(res, op.Failure, dex.Classify(err))
	}

	res.Outcome = Success
	res.Message = op.Success
	i.log.Info("confirmed", "seq", res.Seq, "op", op.Name, "block", receipt.BlockNumber, "gas", receipt.GasUsed)
	return res
}

func (i *Invoker) read(ctx context.Context, s *session.Session, op dex.Operation, res Result) Result {
	values, err := s.Client.Call(ctx, op.Name)
	if err != nil {
		return failure(res, op.Failure, dex.Classify(err))
	}
	if len(values) != 2 {
		return failure(res, op.Failure, fmt.Errorf("%w: %s returned %d values", dex.ErrSubmissionFailure, op.Name, len(values)))
	}

	res.Outcome = Success
	res.Values = values
	res.Message = fmt.Sprintf(op.Success, values[0].String(), values[1].String())
	i.log.Debug("read", "seq", res.Seq, "op", op.Name, "a", values[0], "b", values[1])
	return res
}

func (i *Invoker) publish(res Result) Result {
	res.At = time.Now()
	if !res.OK() {
		i.log.Error(res.Message, "seq", res.Seq, "op", res.Operation, "err", res.Err)
	}
	if !i.slot.Publish(res) {
		res.Stale = true
		i.log.Debug("discarded stale result", "seq", res.Seq, "op", res.Operation)
	}
	return res
}

func failure(res Result, msg string, err error) Result {
	res.Outcome = Failure
	res.Message = msg
	res.Err = err
	return res
}
