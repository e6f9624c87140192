// Package metrics 定義 Prometheus 指標，並提供把領域錯誤轉成 outcome 標籤的輔助函式。
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bankist/internal/bank"
	"bankist/internal/session"
)

// Operations counts ledger commands by operation and outcome.
var Operations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "bankist",
	Name:      "operations_total",
	Help:      "Ledger commands by operation and outcome.",
}, []string{"op", "outcome"})

// AccountsOpen tracks the number of accounts currently in the ledger.
var AccountsOpen = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "bankist",
	Name:      "accounts_open",
	Help:      "Accounts currently in the ledger.",
})

// ActiveSessions tracks logged-in sessions that have not expired.
var ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "bankist",
	Name:      "sessions_active",
	Help:      "Logged-in sessions that have not expired.",
})

// Outcome 將錯誤轉為固定的標籤值，避免標籤基數失控。
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, bank.ErrNotFound):
		return "not_found"
	case errors.Is(err, bank.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, bank.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, bank.ErrSelfTransfer):
		return "self_transfer"
	case errors.Is(err, bank.ErrCreditCheckFailed):
		return "credit_check_failed"
	case errors.Is(err, bank.ErrAuthMismatch):
		return "auth_mismatch"
	case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrSessionExpired), errors.Is(err, session.ErrInvalidToken):
		return "unauthenticated"
	default:
		return "error"
	}
}

// Observe 記錄一次操作結果並原樣回傳 err，方便在 return 處包裝。
func Observe(op string, err error) error {
	Operations.WithLabelValues(op, Outcome(err)).Inc()
	return err
}
