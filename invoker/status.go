package invoker

import (
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Outcome is the terminal state of one invocation.
type Outcome int

const (
	Success Outcome = iota + 1
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is the ActionResult published to the status slot.
type Result struct {
	Seq       uint64
	Operation string
	Outcome   Outcome
	Message   string
	Values    []*big.Int  // raw outputs of read operations
	TxHash    common.Hash // mutating operations, once submitted
	Err       error       // diagnostic cause, not for display
	Stale     bool        // discarded by the slot
	At        time.Time   // completion time
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool { return r.Outcome == Success }

// Slot holds the single live Result. With discardStale set, a result older
// than the one already published is dropped; otherwise the last completion
// wins.
type Slot struct {
	mu           sync.RWMutex
	current      Result
	has          bool
	discardStale bool
}

// NewSlot creates an empty slot.
func NewSlot(discardStale bool) *Slot {
	return &Slot{discardStale: discardStale}
}

// Publish replaces the live result and reports whether r was kept.
func (s *Slot) Publish(r Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.discardStale && s.has && r.Seq < s.current.Seq {
		return false
	}
	s.current = r
	s.has = true
	return true
}

// Current returns the live result, if any has been published.
func (s *Slot) Current() (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.has
}
