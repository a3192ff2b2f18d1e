package handlers

import (
	"errors"
	"strconv"

	"fitcoin/internal/models"
	"fitcoin/internal/services/ledger"
	"fitcoin/internal/services/reward"
	"fitcoin/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type RewardHandler struct {
	rewardService reward.Service
	ledgerService ledger.Service
}

func NewRewardHandler(rewardSvc reward.Service, ledgerSvc ledger.Service) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardSvc,
		ledgerService: ledgerSvc,
	}
}

func (h *RewardHandler) ListRewards(c *fiber.Ctx) error {
	rewards, err := h.rewardService.List(c.Context())
	if err != nil {
		return utils.InternalError(c, "Failed to list rewards")
	}

	return utils.Success(c, fiber.Map{"rewards": rewards})
}

// RedeemReward purchases a catalog reward with coins.
func (h *RewardHandler) RedeemReward(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	rewardID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid reward ID")
	}

	result, err := h.ledgerService.RedeemReward(c.Context(), claims.UserID, uint(rewardID))
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrRewardNotFound):
			return utils.NotFound(c, "Reward not found")
		case errors.Is(err, ledger.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, ledger.ErrWalletNotFound):
			return utils.BadRequest(c, "Wallet not initialized")
		case errors.Is(err, ledger.ErrInsufficientBalance):
			return utils.BadRequest(c, "Insufficient balance")
		case errors.Is(err, ledger.ErrOutOfStock):
			return utils.BadRequest(c, "Reward out of stock")
		default:
			return utils.InternalError(c, "Failed to redeem reward")
		}
	}

	return utils.Success(c, fiber.Map{
		"success":     true,
		"message":     "Reward redeemed successfully",
		"balance":     result.NewBalance,
		"transaction": result.Transaction,
	})
}

// ListRedemptions returns the caller's past catalog redemptions.
func (h *RewardHandler) ListRedemptions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	redemptions, err := h.rewardService.ListRedemptions(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to list redemptions")
	}

	return utils.Success(c, fiber.Map{"redemptions": redemptions})
}

// CreateReward is the administrative catalog endpoint.
func (h *RewardHandler) CreateReward(c *fiber.Ctx) error {
	var input models.Reward
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if err := h.rewardService.Create(c.Context(), &input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Reward created",
		"reward":  input,
	})
}
