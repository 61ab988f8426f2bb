package ledger

import (
	"errors"
	"testing"
	"time"
)

var now = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func TestTransitionHappyPath(t *testing.T) {
	rec := &CommissionRecord{Status: StatusPending}

	if err := rec.Transition(StatusApproved, StatusPending, "", now); err != nil {
		t.Fatalf("pending → approved: %v", err)
	}
	if err := rec.Transition(StatusPaid, StatusApproved, "", now); err != nil {
		t.Fatalf("approved → paid: %v", err)
	}
	if rec.PaidDate == nil || !rec.PaidDate.Equal(now) {
		t.Errorf("PaidDate = %v, want %v", rec.PaidDate, now)
	}
}

func TestTransitionInvalid(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{"paid is terminal", StatusPaid, StatusPending},
		{"paid cannot be disputed", StatusPaid, StatusDisputed},
		{"cancelled is terminal", StatusCancelled, StatusPending},
		{"pending cannot jump to paid", StatusPending, StatusPaid},
		{"disputed cannot be approved directly", StatusDisputed, StatusApproved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &CommissionRecord{Status: tt.from}
			err := rec.Transition(tt.to, tt.from, "some reason", now)
			var ite *InvalidTransitionError
			if !errors.As(err, &ite) {
				t.Fatalf("Transition(%s → %s) error = %v, want InvalidTransitionError", tt.from, tt.to, err)
			}
			if rec.Status != tt.from {
				t.Errorf("status mutated to %s on a rejected transition", rec.Status)
			}
		})
	}
}

func TestTransitionStaleState(t *testing.T) {
	rec := &CommissionRecord{Status: StatusApproved}
	// Caller still believes the record is pending.
	err := rec.Transition(StatusApproved, StatusPending, "", now)
	if !errors.Is(err, ErrStaleState) {
		t.Fatalf("Transition() error = %v, want ErrStaleState", err)
	}
}

func TestDisputeLifecycle(t *testing.T) {
	rec := &CommissionRecord{Status: StatusApproved}

	// A dispute needs a reason.
	if err := rec.Transition(StatusDisputed, StatusApproved, "", now); err == nil {
		t.Fatal("dispute without a reason should fail")
	}
	if err := rec.Transition(StatusDisputed, StatusApproved, "member claims refund", now); err != nil {
		t.Fatalf("approved → disputed: %v", err)
	}
	if rec.DisputeReason != "member claims refund" {
		t.Errorf("DisputeReason = %q", rec.DisputeReason)
	}

	// Resolution back to pending clears the reason; approval then works.
	if err := rec.Transition(StatusPending, StatusDisputed, "", now); err != nil {
		t.Fatalf("disputed → pending: %v", err)
	}
	if rec.DisputeReason != "" {
		t.Errorf("DisputeReason not cleared on resolution: %q", rec.DisputeReason)
	}
	if err := rec.Transition(StatusApproved, StatusPending, "", now); err != nil {
		t.Fatalf("pending → approved after resolution: %v", err)
	}

	// Or a dispute can cancel the record outright.
	rec2 := &CommissionRecord{Status: StatusPending}
	if err := rec2.Transition(StatusDisputed, StatusPending, "duplicate entry", now); err != nil {
		t.Fatalf("pending → disputed: %v", err)
	}
	if err := rec2.Transition(StatusCancelled, StatusDisputed, "", now); err != nil {
		t.Fatalf("disputed → cancelled: %v", err)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusApproved, StatusPaid, StatusDisputed, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("archived") {
		t.Error("ValidStatus(archived) = true")
	}
}
