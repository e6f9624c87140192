// internal/server/router.go
//
// 本檔負責 HTTP 路由註冊，與 handler.go 分離：
//   - handler.go 定義「如何處理請求」
//   - router.go 定義「請求如何被導向」
//   - cli/serve.go 組裝整體應用（注入 Ledger、Session Manager、Issuer）
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App 建立並回傳整個 fiber 應用。
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "bankist",
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	if s.corsOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: s.corsOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET,POST,OPTIONS",
		}))
	}

	// 健康檢查
	app.Get("/health", s.health)

	// Prometheus 指標
	if s.metricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// ────────────────
	// API v1
	// ────────────────
	v1 := app.Group("/api/v1")

	// 公開：登入
	v1.Post("/login", s.login)

	// 需要 session：
	//   - GET  /account          → 摘要與異動列
	//   - POST /account/sort     → 切換排序
	//   - POST /transfer         → 轉帳
	//   - POST /loan             → 貸款
	//   - POST /close            → 結清帳戶
	//   - POST /logout           → 登出
	protected := v1.Group("")
	protected.Use(s.requireSession)

	protected.Get("/account", s.account)
	protected.Post("/account/sort", s.toggleSort)
	protected.Post("/transfer", s.transfer)
	protected.Post("/loan", s.loan)
	protected.Post("/close", s.closeAccount)
	protected.Post("/logout", s.logout)

	return app
}
