// internal/storage/seedstore.go
//
// 提供 seed file 的讀取與寫出。
// 讀取依副檔名判斷格式：.toml 以 BurntSushi/toml 解析，其餘視為 JSON。
// 寫出固定為 JSON，並採「原子寫入」：先寫 .tmp 檔，再以 rename() 取代原檔，
// 寫入中斷時不會留下半份檔案。
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrEmptySeedFile 代表檔案可解析但沒有任何帳戶。
var ErrEmptySeedFile = errors.New("seed file has no accounts")

// LoadSeeds 讀取指定路徑的 seed file。
// 檔案不存在、格式錯誤或沒有帳戶時回傳錯誤（通常於啟動時呼叫）。
func LoadSeeds(path string) (SeedFile, error) {
	var sf SeedFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &sf); err != nil {
			return sf, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		f, err := os.Open(path)
		if err != nil {
			return sf, err
		}
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&sf); err != nil {
			return sf, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	if len(sf.Accounts) == 0 {
		return sf, fmt.Errorf("%s: %w", path, ErrEmptySeedFile)
	}
	return sf, nil
}

// SaveSeeds 將 SeedFile 以 JSON 原子寫入 path。
// 流程：
//  1. 設定 Meta.Storage 與當前時間戳。
//  2. 寫入 path+".tmp" 暫存檔。
//  3. 寫入完成後使用 os.Rename() 取代正式檔案。
func SaveSeeds(path string, sf SeedFile) error {
	sf.Meta.Storage = "json_seed"
	if sf.Meta.Version == 0 {
		sf.Meta.Version = 1
	}
	sf.Meta.Timestamp = time.Now()
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	// 縮排輸出，方便人工編輯初始資料
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sf); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}
