// internal/ledger/statemachine.go
package ledger

import (
	"errors"
	"fmt"
	"time"
)

// ErrStaleState means the record's status changed underneath the caller
// (two staff acting on the same record). Re-fetch and retry.
var ErrStaleState = errors.New("ledger: record status changed concurrently, re-fetch and retry")

// ErrImmutableRecord means an attempt to recompute or mutate the amounts
// of a record that has already been paid.
var ErrImmutableRecord = errors.New("ledger: paid records are immutable")

// InvalidTransitionError reports a transition the state machine forbids,
// e.g. paid → pending. Forbidden transitions are rejected, never coerced.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("ledger: transition %s → %s is not allowed", e.From, e.To)
}

// allowed transitions. paid and cancelled are terminal.
var allowed = map[string][]string{
	StatusPending:   {StatusApproved, StatusDisputed, StatusCancelled},
	StatusApproved:  {StatusPaid, StatusDisputed, StatusCancelled},
	StatusDisputed:  {StatusPending, StatusCancelled},
	StatusPaid:      {},
	StatusCancelled: {},
}

func canTransition(from, to string) bool {
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves the record to a new status. expectedCurrent is the
// status the caller last observed; a mismatch fails with ErrStaleState
// instead of overwriting someone else's transition. reason is required
// when disputing and cleared when a dispute resolves back to pending.
// Moving to paid stamps PaidDate.
func (rec *CommissionRecord) Transition(to, expectedCurrent, reason string, now time.Time) error {
	if rec.Status != expectedCurrent {
		return ErrStaleState
	}
	if !canTransition(rec.Status, to) {
		return &InvalidTransitionError{From: rec.Status, To: to}
	}

	switch to {
	case StatusApproved:
		if rec.DisputeReason != "" {
			return fmt.Errorf("ledger: cannot approve with an open dispute: %s", rec.DisputeReason)
		}
	case StatusDisputed:
		if reason == "" {
			return fmt.Errorf("ledger: a dispute requires a reason")
		}
		rec.DisputeReason = reason
	case StatusPending:
		// Dispute resolved in the record holder's favor.
		rec.DisputeReason = ""
	case StatusPaid:
		paid := now
		rec.PaidDate = &paid
	}

	rec.Status = to
	return nil
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s string) bool {
	_, ok := allowed[s]
	return ok
}
