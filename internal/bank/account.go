// Package bank 定義核心領域模型與業務規則。
// 本檔定義 Account、Movement 與 Seed 結構，以及使用者名稱推導，不含任何 HTTP 或儲存細節。

package bank

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Kind 表示一筆異動的方向。
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// KindOf 依金額正負回傳異動方向；0 視為提出（與畫面顯示規則一致）。
func KindOf(m decimal.Decimal) Kind {
	if m.IsPositive() {
		return KindDeposit
	}
	return KindWithdrawal
}

// Account represents a bank customer.
// Balance 不儲存，讀取時一律由 Movements 加總，避免與異動紀錄不一致。
type Account struct {
	Owner        string            `json:"owner"`
	Username     string            `json:"username"`
	InterestRate decimal.Decimal   `json:"interest_rate"`
	Movements    []decimal.Decimal `json:"movements"`

	pinHash []byte
}

// Balance 回傳所有異動的加總。
func (a *Account) Balance() decimal.Decimal {
	return decimal.Sum(decimal.Zero, a.Movements...)
}

// FirstName 回傳擁有者名稱的第一個字，用於歡迎訊息。
func (a *Account) FirstName() string {
	f := strings.Fields(a.Owner)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// clone 回傳深拷貝，讓呼叫端無法透過回傳值改寫 Ledger 內部切片。
func (a *Account) clone() *Account {
	cp := *a
	cp.Movements = append([]decimal.Decimal(nil), a.Movements...)
	cp.pinHash = nil
	return &cp
}

// Seed 為建立 Ledger 時的初始帳戶資料。
type Seed struct {
	Owner        string
	PIN          int
	InterestRate decimal.Decimal
	Movements    []decimal.Decimal
}

// DeriveUsername 取 owner 每個單字的首字母並轉小寫，例如 "Jessica Davis" → "jd"。
// 純函式，只在建立帳戶時呼叫一次。
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, w := range strings.Fields(owner) {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// amounts 為測試與預設資料使用的小工具：將整數轉為 decimal 切片。
func amounts(vs ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vs))
	for i, v := range vs {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

// DefaultSeeds 回傳系統內建的四個示範帳戶。
func DefaultSeeds() []Seed {
	return []Seed{
		{
			Owner:        "Jonas Schmedtmann",
			PIN:          1111,
			InterestRate: decimal.RequireFromString("1.2"),
			Movements:    amounts(200, 450, -400, 3000, -650, -130, 70, 1300),
		},
		{
			Owner:        "Jessica Davis",
			PIN:          2222,
			InterestRate: decimal.RequireFromString("1.5"),
			Movements:    amounts(5000, 3400, -150, -790, -3210, -1000, 8500, -30),
		},
		{
			Owner:        "Steven Thomas Williams",
			PIN:          3333,
			InterestRate: decimal.RequireFromString("0.7"),
			Movements:    amounts(200, -200, 340, -300, -20, 50, 400, -460),
		},
		{
			Owner:        "Sarah Smith",
			PIN:          4444,
			InterestRate: decimal.NewFromInt(1),
			Movements:    amounts(430, 1000, 700, 50, 90),
		},
	}
}
