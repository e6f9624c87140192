// Package cli 定義 bankist 的命令列指令（cobra）。
// 每個指令自行組裝所需元件：設定 → Ledger → Session Manager → adapter。
package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"bankist/internal/bank"
	"bankist/internal/config"
	"bankist/internal/storage"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "bankist",
	Short: "Bankist demo bank",
	Long: `Bankist keeps an in-memory ledger of seeded demo accounts and serves it over
an HTTP JSON API or an interactive terminal shell. State is rebuilt from the seed
set on every start.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to bankist.toml")
}

// Execute 執行根指令。
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig 讀取 --config 指定的設定檔（可為空）。
func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// buildLedger 依設定建立 Ledger：有 seed_file 時讀檔，否則使用內建示範帳戶。
func buildLedger(cfg config.Config) (*bank.Ledger, error) {
	seeds := bank.DefaultSeeds()
	if cfg.Ledger.SeedFile != "" {
		sf, err := storage.LoadSeeds(cfg.Ledger.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("load seeds: %w", err)
		}
		seeds = bank.SeedsFrom(sf)
	}
	l, err := bank.NewLedger(seeds, bank.WithPINCost(cfg.Auth.PINCost))
	if err != nil {
		return nil, fmt.Errorf("build ledger: %w", err)
	}
	log.Printf("ledger ready with %d account(s)", l.Len())
	return l, nil
}
