// internal/bank/bank.go

// Package bank 定義核心商業邏輯：登入驗證、轉帳、貸款、結清帳戶與畫面摘要。
// Ledger 為聚合根，以單一互斥鎖 (sync.Mutex) 保障所有狀態變更「原子且序列化」；
// 轉帳的兩筆異動在同一個臨界區內完成，外部不會觀察到只完成一半的狀態。
// 金額一律使用 decimal，避免浮點誤差。
package bank

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"bankist/internal/storage"
)

// loanRatio：貸款金額的 10%，至少要有一筆異動達到此值才核准。
var loanRatio = decimal.RequireFromString("0.1")

// Ledger 管理全系統帳戶。
// - mu：序列化所有讀寫。
// - accts：保留建立順序的帳戶清單；結清時直接移除。
type Ledger struct {
	mu      sync.Mutex
	accts   []*Account
	pinCost int
}

// Option 調整 Ledger 的建立參數。
type Option func(*Ledger)

// WithPINCost 設定 PIN 雜湊的 bcrypt cost。測試可用 bcrypt.MinCost 加速。
func WithPINCost(cost int) Option {
	return func(l *Ledger) { l.pinCost = cost }
}

// NewLedger 由初始資料建立 Ledger，並為每個帳戶推導一次 username。
// 推導出的 username 重複時回傳 ErrDuplicateUsername，避免登入與轉帳查找時遮蔽其中一個帳戶。
func NewLedger(seeds []Seed, opts ...Option) (*Ledger, error) {
	l := &Ledger{pinCost: bcrypt.DefaultCost}
	for _, o := range opts {
		o(l)
	}
	seen := make(map[string]string, len(seeds))
	for _, s := range seeds {
		username := DeriveUsername(s.Owner)
		if username == "" {
			return nil, ErrInvalidOwner
		}
		if prev, dup := seen[username]; dup {
			return nil, fmt.Errorf("%w: %q and %q both derive %q", ErrDuplicateUsername, prev, s.Owner, username)
		}
		seen[username] = s.Owner

		hash, err := bcrypt.GenerateFromPassword([]byte(strconv.Itoa(s.PIN)), l.pinCost)
		if err != nil {
			return nil, fmt.Errorf("hash pin for %s: %w", username, err)
		}
		l.accts = append(l.accts, &Account{
			Owner:        s.Owner,
			Username:     username,
			InterestRate: s.InterestRate,
			Movements:    append([]decimal.Decimal(nil), s.Movements...),
			pinHash:      hash,
		})
	}
	return l, nil
}

// find 以線性搜尋取得帳戶位置；呼叫端必須持有 mu。
func (l *Ledger) find(username string) (int, *Account) {
	for i, a := range l.accts {
		if a.Username == username {
			return i, a
		}
	}
	return -1, nil
}

// pinHashOf 在臨界區內取出 PIN 雜湊，讓 bcrypt 比對（耗時）可以在鎖外進行。
func (l *Ledger) pinHashOf(username string) ([]byte, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, a := l.find(username)
	if a == nil {
		return nil, false
	}
	return a.pinHash, true
}

func pinMatches(hash []byte, pin int) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(strconv.Itoa(pin))) == nil
}

// Len 回傳目前帳戶數量。
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.accts)
}

// Accounts 依建立順序回傳所有帳戶的深拷貝。
func (l *Ledger) Accounts() []*Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Account, 0, len(l.accts))
	for _, a := range l.accts {
		out = append(out, a.clone())
	}
	return out
}

// Get 依 username 取得帳戶快照；不存在回傳 ErrNotFound。
func (l *Ledger) Get(username string) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, a := l.find(username)
	if a == nil {
		return nil, ErrNotFound
	}
	return a.clone(), nil
}

// Authenticate 比對 username 與 PIN；任一不符都回傳 ErrNotFound。
// 失敗沒有任何副作用（不鎖定、不計次）。
func (l *Ledger) Authenticate(username string, pin int) (*Account, error) {
	hash, ok := l.pinHashOf(username)
	if !ok || !pinMatches(hash, pin) {
		return nil, ErrNotFound
	}
	return l.Get(username)
}

// Transfer 轉帳為單一臨界區內的原子操作：
// 1) 金額 > 0 → 2) 雙方存在 → 3) 非同一帳戶 → 4) 餘額足夠 → 5) 先扣來源、再入帳目標。
// 任一檢查失敗皆不改變任何帳戶。
func (l *Ledger) Transfer(from, to string, amt decimal.Decimal) error {
	if !amt.IsPositive() {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	_, src := l.find(from)
	if src == nil {
		return fmt.Errorf("source %q: %w", from, ErrNotFound)
	}
	_, dst := l.find(to)
	if dst == nil {
		return fmt.Errorf("receiver %q: %w", to, ErrNotFound)
	}
	if dst.Username == src.Username {
		return ErrSelfTransfer
	}
	if src.Balance().LessThan(amt) {
		return ErrInsufficientFunds
	}

	src.Movements = append(src.Movements, amt.Neg())
	dst.Movements = append(dst.Movements, amt)
	return nil
}

// RequestLoan 貸款：金額需 > 0，且至少有一筆歷史異動 >= 金額的 10%。
// 核准後直接追加一筆正向異動。
func (l *Ledger) RequestLoan(username string, amt decimal.Decimal) error {
	if !amt.IsPositive() {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	_, a := l.find(username)
	if a == nil {
		return ErrNotFound
	}
	floor := amt.Mul(loanRatio)
	for _, m := range a.Movements {
		if m.GreaterThanOrEqual(floor) {
			a.Movements = append(a.Movements, amt)
			return nil
		}
	}
	return ErrCreditCheckFailed
}

// CloseAccount 結清 current 帳戶：輸入的 username 與 pin 必須與 current 完全相符。
// 成功後帳戶自 Ledger 永久移除；重複呼叫會得到 ErrNotFound。
func (l *Ledger) CloseAccount(current, username string, pin int) error {
	hash, ok := l.pinHashOf(current)
	if !ok {
		return ErrNotFound
	}
	if username != current || !pinMatches(hash, pin) {
		return ErrAuthMismatch
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	i, a := l.find(current)
	if a == nil {
		// 比對 PIN 期間已被其他請求結清
		return ErrNotFound
	}
	l.accts = append(l.accts[:i], l.accts[i+1:]...)
	return nil
}

// DeriveSummary 回傳帳戶目前的摘要；每次呼叫都由異動重新計算。
func (l *Ledger) DeriveSummary(username string) (Summary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, a := l.find(username)
	if a == nil {
		return Summary{}, ErrNotFound
	}
	return Summarize(a.Movements, a.InterestRate), nil
}

// ListMovements 回傳異動拷貝：sortAscending 為 true 時依金額遞增，否則維持建立順序。
// 儲存的順序永遠不變。
func (l *Ledger) ListMovements(username string, sortAscending bool) ([]decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, a := l.find(username)
	if a == nil {
		return nil, ErrNotFound
	}
	if sortAscending {
		return SortAscending(a.Movements), nil
	}
	return append([]decimal.Decimal(nil), a.Movements...), nil
}

// View 在同一個臨界區內取得摘要與異動列，確保兩者對應同一時間點的狀態。
func (l *Ledger) View(username string, sortAscending bool) (View, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, a := l.find(username)
	if a == nil {
		return View{}, ErrNotFound
	}
	movs := a.Movements
	if sortAscending {
		movs = SortAscending(movs)
	}
	return View{
		Owner:     a.Owner,
		Username:  a.Username,
		Sorted:    sortAscending,
		Summary:   Summarize(a.Movements, a.InterestRate),
		Movements: rows(movs),
	}, nil
}

// SeedsFrom 將 storage.SeedFile 轉為建立 Ledger 所需的 Seed。
func SeedsFrom(sf storage.SeedFile) []Seed {
	out := make([]Seed, 0, len(sf.Accounts))
	for _, a := range sf.Accounts {
		out = append(out, Seed{
			Owner:        a.Owner,
			PIN:          a.PIN,
			InterestRate: a.InterestRate,
			Movements:    append([]decimal.Decimal(nil), a.Movements...),
		})
	}
	return out
}

// SeedFileOf 將 Seed 匯出為可寫入磁碟的 storage.SeedFile。
func SeedFileOf(seeds []Seed) storage.SeedFile {
	sf := storage.SeedFile{
		Meta: storage.Meta{Version: 1, Note: "Initial accounts; re-read on every start."},
	}
	for _, s := range seeds {
		sf.Accounts = append(sf.Accounts, storage.SeedAccount{
			Owner:        s.Owner,
			PIN:          s.PIN,
			InterestRate: s.InterestRate,
			Movements:    s.Movements,
		})
	}
	return sf
}
