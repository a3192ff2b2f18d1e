package handlers

import (
	"errors"

	"fitcoin/internal/services/ledger"
	"fitcoin/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const walletHistoryPreview = 5

type WalletHandler struct {
	ledgerService ledger.Service
}

func NewWalletHandler(ledgerSvc ledger.Service) *WalletHandler {
	return &WalletHandler{ledgerService: ledgerSvc}
}

// GetWallet returns the caller's balance together with their most recent
// transactions, for the wallet screen.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	balance, err := h.ledgerService.GetBalance(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ledger.ErrWalletNotFound) {
			return utils.NotFound(c, "Wallet not found")
		}
		return utils.InternalError(c, "Failed to fetch wallet")
	}

	transactions, total, err := h.ledgerService.GetHistory(c.Context(), claims.UserID, walletHistoryPreview, 0)
	if err != nil {
		return utils.InternalError(c, "Failed to fetch transactions")
	}

	return utils.Success(c, fiber.Map{
		"balance":            balance,
		"transactions":       transactions,
		"total_transactions": total,
	})
}
