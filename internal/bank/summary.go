// internal/bank/summary.go
//
// 衍生數值的計算：餘額、存入總額、提出總額、利息，以及畫面用的異動列。
// 全部為純函式，不持有鎖；Ledger 在臨界區內取得資料拷貝後再呼叫。

package bank

import (
	"slices"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	// minInterest 以下的單筆利息不計入總額（整筆排除，不是四捨五入）。
	minInterest = decimal.NewFromInt(1)
)

// Summary 為單一帳戶的衍生摘要。
type Summary struct {
	Balance          decimal.Decimal `json:"balance"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	TotalInterest    decimal.Decimal `json:"total_interest"`
}

// Summarize 依異動與利率計算摘要。
//   - TotalWithdrawals 為負向異動加總的絕對值。
//   - TotalInterest 只加總每筆存入 m*rate/100 >= 1 的項目。
func Summarize(movements []decimal.Decimal, rate decimal.Decimal) Summary {
	var s Summary
	for _, m := range movements {
		s.Balance = s.Balance.Add(m)
		switch {
		case m.IsPositive():
			s.TotalDeposits = s.TotalDeposits.Add(m)
			if in := m.Mul(rate).Div(hundred); in.GreaterThanOrEqual(minInterest) {
				s.TotalInterest = s.TotalInterest.Add(in)
			}
		case m.IsNegative():
			s.TotalWithdrawals = s.TotalWithdrawals.Add(m)
		}
	}
	s.TotalWithdrawals = s.TotalWithdrawals.Abs()
	return s
}

// SortAscending 回傳依金額由小到大排序的新切片，不改動輸入。
func SortAscending(movements []decimal.Decimal) []decimal.Decimal {
	out := slices.Clone(movements)
	slices.SortStableFunc(out, func(a, b decimal.Decimal) int { return a.Cmp(b) })
	return out
}

// Row 為畫面上一列異動。
type Row struct {
	Index  int             `json:"index"`
	Kind   Kind            `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// View 為一次畫面刷新所需的完整資料。
type View struct {
	Owner     string  `json:"owner"`
	Username  string  `json:"username"`
	Sorted    bool    `json:"sorted"`
	Summary   Summary `json:"summary"`
	Movements []Row   `json:"movements"`
}

// rows 將異動轉為畫面列，Index 為顯示順序中的位置。
func rows(movements []decimal.Decimal) []Row {
	out := make([]Row, len(movements))
	for i, m := range movements {
		out[i] = Row{Index: i, Kind: KindOf(m), Amount: m}
	}
	return out
}
