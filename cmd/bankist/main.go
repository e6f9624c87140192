// cmd/bankist/main.go

// bankist 提供 Bankist 示範銀行的 HTTP API 與終端機介面。
// 實際的指令定義位於 internal/cli。
package main

import (
	"os"

	"bankist/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
