package handlers

import (
	"errors"
	"strconv"

	"fitcoin/internal/models"
	"fitcoin/internal/services/challenge"
	"fitcoin/internal/services/ledger"
	"fitcoin/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ChallengeHandler struct {
	challengeService challenge.Service
	ledgerService    ledger.Service
}

func NewChallengeHandler(challengeSvc challenge.Service, ledgerSvc ledger.Service) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeSvc,
		ledgerService:    ledgerSvc,
	}
}

// ListChallenges returns every challenge annotated with the caller's
// redemption state.
func (h *ChallengeHandler) ListChallenges(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	challenges, err := h.challengeService.List(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to list challenges")
	}

	return utils.Success(c, fiber.Map{"challenges": challenges})
}

// RedeemChallenge pays out a challenge's reward to the caller.
func (h *ChallengeHandler) RedeemChallenge(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	challengeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid challenge ID")
	}

	result, err := h.ledgerService.RedeemChallenge(c.Context(), claims.UserID, uint(challengeID))
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrChallengeNotFound):
			return utils.NotFound(c, "Challenge not found")
		case errors.Is(err, ledger.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, ledger.ErrAlreadyRedeemed):
			return utils.BadRequest(c, "Challenge already redeemed")
		default:
			return utils.InternalError(c, "Failed to redeem challenge")
		}
	}

	return utils.Success(c, fiber.Map{
		"message":     "Challenge redeemed successfully",
		"challenge":   result.Challenge,
		"new_balance": result.NewBalance,
		"transaction": result.Transaction,
	})
}

// CreateChallenge is the administrative catalog endpoint.
func (h *ChallengeHandler) CreateChallenge(c *fiber.Ctx) error {
	var input models.Challenge
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if err := h.challengeService.Create(c.Context(), &input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Challenge created",
		"challenge": input,
	})
}
