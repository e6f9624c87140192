// internal/server/response.go
//
// 本檔負責統一錯誤回應格式與領域錯誤 → HTTP 狀態碼的對應。
// 所有 handler 只回傳 error，由 errorHandler 集中輸出 {"error": "..."}。
package server

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"bankist/internal/bank"
	"bankist/internal/session"
)

// statusFor 將領域錯誤對應到 HTTP 狀態碼。
func statusFor(err error) int {
	switch {
	case errors.Is(err, bank.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, bank.ErrInvalidAmount), errors.Is(err, bank.ErrSelfTransfer):
		return fiber.StatusBadRequest
	case errors.Is(err, bank.ErrInsufficientFunds):
		return fiber.StatusConflict
	case errors.Is(err, bank.ErrCreditCheckFailed):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, bank.ErrAuthMismatch):
		return fiber.StatusForbidden
	case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrSessionExpired), errors.Is(err, session.ErrInvalidToken):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// domainError 將領域錯誤包成 *fiber.Error。
func domainError(err error) error {
	return fiber.NewError(statusFor(err), err.Error())
}

// errorHandler 統一輸出錯誤回應；非預期錯誤只記錄，不把內部訊息回給用戶端。
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	log.Println("unexpected error:", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
