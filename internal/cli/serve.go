package cli

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bankist/internal/server"
	"bankist/internal/session"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP JSON API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := buildLedger(cfg)
	if err != nil {
		return err
	}

	s := server.NewServer(l, session.NewManager(cfg.SessionTTL()), session.NewIssuer(cfg.Auth.JWTSecret))
	s.SetCORSOrigins(cfg.Server.CORSOrigins)
	if cfg.Metrics.Enabled {
		s.EnableMetrics()
	}
	app := s.App()

	// 收到 SIGINT/SIGTERM 時優雅關閉，讓進行中的請求完成
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Println("shutting down")
		_ = app.Shutdown()
	}()

	log.Printf("Bankist server running at %s", cfg.Addr())
	return app.Listen(cfg.Addr())
}
