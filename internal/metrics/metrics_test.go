package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"bankist/internal/bank"
	"bankist/internal/session"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{bank.ErrNotFound, "not_found"},
		{fmt.Errorf("receiver %q: %w", "zz", bank.ErrNotFound), "not_found"},
		{bank.ErrInvalidAmount, "invalid_amount"},
		{bank.ErrInsufficientFunds, "insufficient_funds"},
		{bank.ErrSelfTransfer, "self_transfer"},
		{bank.ErrCreditCheckFailed, "credit_check_failed"},
		{bank.ErrAuthMismatch, "auth_mismatch"},
		{session.ErrSessionExpired, "unauthenticated"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.want {
			t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestObserveCounts(t *testing.T) {
	c := Operations.WithLabelValues("loan", "credit_check_failed")
	before := testutil.ToFloat64(c)

	err := Observe("loan", bank.ErrCreditCheckFailed)
	if !errors.Is(err, bank.ErrCreditCheckFailed) {
		t.Fatalf("Observe should return the error unchanged, got %v", err)
	}
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("counter = %v, want %v", got, before+1)
	}
}
