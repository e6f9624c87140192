// internal/server/handler.go
//
// Package server
// ─────────────────────────────────────────────
// 提供 HTTP JSON 介面，作為 bank 模組的 adapter。
// 每個 handler 僅負責：
//  1. 解析請求並取出目前的 session
//  2. 呼叫 bank.Ledger 執行商業邏輯
//  3. 成功後回傳刷新後的畫面資料 (bank.View)
//
// 目前登入的帳戶不存放在全域變數：bearer token 內含 session ID，
// 每個請求由 requireSession 還原出 session.Session 再往下傳。
package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"bankist/internal/bank"
	"bankist/internal/metrics"
	"bankist/internal/session"
)

const ctxSessionKey = "session"

// Server 為 HTTP 層核心結構。
type Server struct {
	Ledger   *bank.Ledger
	Sessions *session.Manager

	tokens         *session.Issuer
	metricsEnabled bool
	corsOrigins    string
}

// NewServer 建立新的 HTTP 伺服器。
func NewServer(l *bank.Ledger, sm *session.Manager, iss *session.Issuer) *Server {
	metrics.AccountsOpen.Set(float64(l.Len()))
	return &Server{Ledger: l, Sessions: sm, tokens: iss}
}

// EnableMetrics 開啟 /metrics 端點。
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetCORSOrigins 設定允許的來源（逗號分隔）；空字串表示不掛 CORS middleware。
func (s *Server) SetCORSOrigins(origins string) { s.corsOrigins = origins }

type loginRequest struct {
	Username string `json:"username"`
	PIN      int    `json:"pin"`
}

type transferRequest struct {
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type loanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type closeRequest struct {
	Username string `json:"username"`
	PIN      int    `json:"pin"`
}

// login 處理 POST /api/v1/login：驗證成功即建立 session 並簽發 token。
func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	acc, err := s.Ledger.Authenticate(strings.TrimSpace(req.Username), req.PIN)
	if metrics.Observe("login", err) != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "incorrect username or pin")
	}

	sess := s.Sessions.Begin(acc.Username)
	metrics.ActiveSessions.Set(float64(s.Sessions.Active()))
	token, err := s.tokens.Issue(sess)
	if err != nil {
		return err
	}
	view, err := s.Ledger.View(acc.Username, sess.Sorted)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(fiber.Map{
		"token":      token,
		"expires_at": sess.ExpiresAt.Format(time.RFC3339),
		"welcome":    fmt.Sprintf("Welcome back, %s", acc.FirstName()),
		"view":       view,
	})
}

// requireSession 驗證 bearer token 並把 session 放進 c.Locals。
func (s *Server) requireSession(c *fiber.Ctx) error {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return fiber.NewError(fiber.StatusUnauthorized, "authorization must be 'Bearer <token>'")
	}
	claims, err := s.tokens.Parse(parts[1])
	if err != nil {
		return domainError(err)
	}
	sess, err := s.Sessions.Get(claims.ID)
	if err != nil {
		return domainError(err)
	}
	if sess.Username != claims.Subject {
		return domainError(session.ErrInvalidToken)
	}
	c.Locals(ctxSessionKey, sess)
	return c.Next()
}

func currentSession(c *fiber.Ctx) session.Session {
	sess, _ := c.Locals(ctxSessionKey).(session.Session)
	return sess
}

// render 回傳 username 的最新畫面。
func (s *Server) render(c *fiber.Ctx, username string, sorted bool) error {
	view, err := s.Ledger.View(username, sorted)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(view)
}

// account 處理 GET /api/v1/account；?sort= 可覆蓋 session 的排序開關。
func (s *Server) account(c *fiber.Ctx) error {
	sess := currentSession(c)
	sorted := sess.Sorted
	if q := c.Query("sort"); q != "" {
		v, err := strconv.ParseBool(q)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "sort must be true or false")
		}
		sorted = v
	}
	return s.render(c, sess.Username, sorted)
}

// toggleSort 處理 POST /api/v1/account/sort。
func (s *Server) toggleSort(c *fiber.Ctx) error {
	sess := currentSession(c)
	sorted, err := s.Sessions.ToggleSort(sess.ID)
	if err != nil {
		return domainError(err)
	}
	return s.render(c, sess.Username, sorted)
}

// transfer 處理 POST /api/v1/transfer。amount 可為 JSON 數字或數字字串。
func (s *Server) transfer(c *fiber.Ctx) error {
	sess := currentSession(c)
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return domainError(metrics.Observe("transfer", bank.ErrInvalidAmount))
	}
	err := s.Ledger.Transfer(sess.Username, strings.TrimSpace(req.To), req.Amount)
	if metrics.Observe("transfer", err) != nil {
		return domainError(err)
	}
	return s.render(c, sess.Username, sess.Sorted)
}

// loan 處理 POST /api/v1/loan。
func (s *Server) loan(c *fiber.Ctx) error {
	sess := currentSession(c)
	var req loanRequest
	if err := c.BodyParser(&req); err != nil {
		return domainError(metrics.Observe("loan", bank.ErrInvalidAmount))
	}
	err := s.Ledger.RequestLoan(sess.Username, req.Amount)
	if metrics.Observe("loan", err) != nil {
		return domainError(err)
	}
	return s.render(c, sess.Username, sess.Sorted)
}

// closeAccount 處理 POST /api/v1/close：成功後結束該帳戶所有 session。
func (s *Server) closeAccount(c *fiber.Ctx) error {
	sess := currentSession(c)
	var req closeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	err := s.Ledger.CloseAccount(sess.Username, strings.TrimSpace(req.Username), req.PIN)
	if metrics.Observe("close", err) != nil {
		return domainError(err)
	}
	s.Sessions.EndAll(sess.Username)
	metrics.AccountsOpen.Set(float64(s.Ledger.Len()))
	metrics.ActiveSessions.Set(float64(s.Sessions.Active()))
	return c.JSON(fiber.Map{"closed": true, "username": sess.Username})
}

// logout 處理 POST /api/v1/logout。
func (s *Server) logout(c *fiber.Ctx) error {
	s.Sessions.End(currentSession(c).ID)
	metrics.ActiveSessions.Set(float64(s.Sessions.Active()))
	return c.SendStatus(fiber.StatusNoContent)
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "accounts": s.Ledger.Len()})
}
