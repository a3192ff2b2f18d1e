package handlers

import (
	"errors"

	"fitcoin/internal/services/ledger"
	"fitcoin/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const maxTransactionLimit = 100 // Maximum allowed transactions per page

type TransactionHandler struct {
	ledgerService ledger.Service
}

func NewTransactionHandler(ledgerSvc ledger.Service) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerSvc,
	}
}

// SpendCoins debits the caller's wallet against a free-text reference.
func (h *TransactionHandler) SpendCoins(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount    int64  `json:"amount"`
		Reference string `json:"reference"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	result, err := h.ledgerService.SpendCoins(c.Context(), claims.UserID, input.Amount, input.Reference)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount):
			return utils.BadRequest(c, "Amount must be a positive number")
		case errors.Is(err, ledger.ErrEmptyReference):
			return utils.BadRequest(c, "Reference is required")
		case errors.Is(err, ledger.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, ledger.ErrWalletNotFound):
			return utils.BadRequest(c, "Wallet not initialized")
		case errors.Is(err, ledger.ErrInsufficientBalance):
			return utils.BadRequest(c, "Insufficient balance")
		default:
			return utils.InternalError(c, "Failed to spend coins")
		}
	}

	return utils.Success(c, fiber.Map{
		"success":     true,
		"message":     "Coins spent successfully",
		"balance":     result.NewBalance,
		"transaction": result.Transaction,
	})
}

// GetTransactions returns the caller's transaction history, newest first.
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	pagination := utils.ParsePagination(c, 10, maxTransactionLimit)

	transactions, total, err := h.ledgerService.GetHistory(c.Context(), claims.UserID, pagination.Limit, pagination.Offset)
	if err != nil {
		return utils.InternalError(c, "Failed to fetch transactions")
	}
	pagination.Total = total

	return c.JSON(utils.PaginatedResponse(pagination, transactions))
}
