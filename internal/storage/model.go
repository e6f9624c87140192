// internal/storage/model.go
//
// 定義初始帳戶資料檔（seed file）的結構模型。
// 系統不保存執行期間的狀態；每次啟動都從這份固定的初始資料重新建立 Ledger。
// 同一份結構同時支援 JSON 與 TOML 兩種格式。
package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meta 為 seed file 的中繼資料，記錄格式、版本與建立時間。
type Meta struct {
	Storage   string    `json:"storage" toml:"storage"`
	Version   int       `json:"version" toml:"version"`
	Timestamp time.Time `json:"timestamp" toml:"timestamp"`
	Note      string    `json:"note,omitempty" toml:"note,omitempty"`
}

// SeedAccount 為單一初始帳戶的序列化格式。
// 金額與利率皆為 decimal，JSON 中可寫成數字或字串。
type SeedAccount struct {
	Owner        string            `json:"owner" toml:"owner"`
	PIN          int               `json:"pin" toml:"pin"`
	InterestRate decimal.Decimal   `json:"interest_rate" toml:"interest_rate"`
	Movements    []decimal.Decimal `json:"movements" toml:"movements"`
}

// SeedFile 為整份初始資料。
type SeedFile struct {
	Meta     Meta          `json:"_meta" toml:"meta"`
	Accounts []SeedAccount `json:"accounts" toml:"accounts"`
}
