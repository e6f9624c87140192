package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bankist/internal/bank"
	"bankist/internal/storage"
)

func init() {
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(seedsCmd)
	seedsCmd.AddCommand(seedsInitCmd)

	seedsInitCmd.Flags().StringP("out", "o", "seeds.json", "Output path for the seed file")
	seedsInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the seeded accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := buildLedger(cfg)
		if err != nil {
			return err
		}
		writeAccountsTable(cmd.OutOrStdout(), l.Accounts())
		return nil
	},
}

var seedsCmd = &cobra.Command{
	Use:   "seeds",
	Short: "Manage seed files",
}

var seedsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in demo accounts to a JSON seed file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		force, _ := cmd.Flags().GetBool("force")
		if err := writeDefaultSeeds(out, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
		return nil
	},
}

// writeDefaultSeeds 寫出內建示範帳戶；檔案已存在且未指定 force 時拒絕覆蓋。
func writeDefaultSeeds(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return storage.SaveSeeds(path, bank.SeedFileOf(bank.DefaultSeeds()))
}
