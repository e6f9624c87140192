// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 所有拒絕情況都不改變 Ledger 狀態；上層 adapter 以 errors.Is 判斷並轉成 HTTP 狀態碼或畫面訊息。

package bank

import "errors"

var (
	// ErrNotFound 代表登入或轉帳目標查無帳戶。
	ErrNotFound = errors.New("account not found")

	// ErrInvalidAmount 代表金額非正數或無法解析為數字。
	ErrInvalidAmount = errors.New("amount must be > 0")

	// ErrInsufficientFunds 代表轉帳金額超過來源帳戶餘額。
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrSelfTransfer 代表轉帳目標與來源為同一帳戶。
	ErrSelfTransfer = errors.New("cannot transfer to own account")

	// ErrCreditCheckFailed 代表貸款申請未通過：沒有任何一筆異動 >= 申請金額的 10%。
	ErrCreditCheckFailed = errors.New("loan rejected: no movement of at least 10% of the requested amount")

	// ErrAuthMismatch 代表結清帳戶時輸入的帳號或 PIN 不符。
	ErrAuthMismatch = errors.New("username or pin does not match")

	// ErrDuplicateUsername 代表兩個初始帳戶推導出相同的 username。
	ErrDuplicateUsername = errors.New("duplicate username")

	// ErrInvalidOwner 代表初始帳戶缺少擁有者名稱，無法推導 username。
	ErrInvalidOwner = errors.New("owner name is required")
)
