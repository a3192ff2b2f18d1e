package handlers

import (
	"errors"
	"strconv"

	"fitcoin/internal/models"
	"fitcoin/internal/services/ledger"
	"fitcoin/internal/services/user"
	"fitcoin/internal/utils"
	"fitcoin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService   user.Service
	ledgerService ledger.Service
}

func NewUserHandler(userSvc user.Service, ledgerSvc ledger.Service) *UserHandler {
	return &UserHandler{
		userService:   userSvc,
		ledgerService: ledgerSvc,
	}
}

func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	// Self-registration never grants elevated roles.
	input.Role = "user"

	v := validation.New()
	v.UserRegistration(&input)
	if !v.Valid() {
		for _, msg := range v.Errors {
			return utils.BadRequest(c, msg)
		}
	}

	createdUser, err := h.userService.Create(&input)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	createdUser.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    createdUser,
	})
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	profile, err := h.userService.GetByID(claims.UserID)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}

	profile.Password = ""
	return utils.Success(c, fiber.Map{"user": profile})
}

// GetBalance reports a user's coin balance. Regular users may only read
// their own; admins may read anyone's.
func (h *UserHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	idParam := c.Params("userId")
	if idParam == "" {
		return utils.BadRequest(c, "User ID is required")
	}
	userID, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	if claims.Role != "admin" && claims.UserID != uint(userID) {
		return utils.Forbidden(c, "insufficient permissions")
	}

	balance, err := h.ledgerService.GetBalance(c.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, ledger.ErrWalletNotFound) {
			return utils.NotFound(c, "User or wallet not found")
		}
		return utils.InternalError(c, "Failed to get balance")
	}

	return utils.Success(c, fiber.Map{
		"success": true,
		"balance": balance,
	})
}

// AddCoins is the administrative grant endpoint.
func (h *UserHandler) AddCoins(c *fiber.Ctx) error {
	var input struct {
		UserID uint  `json:"user_id"`
		Amount int64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.UserID == 0 {
		return utils.BadRequest(c, "User ID is required")
	}

	result, err := h.ledgerService.AddCoins(c.Context(), input.UserID, input.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount):
			return utils.BadRequest(c, "Amount must be a positive number")
		case errors.Is(err, ledger.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		default:
			return utils.InternalError(c, "Failed to add coins")
		}
	}

	return utils.Success(c, fiber.Map{
		"success":     true,
		"new_balance": result.NewBalance,
		"transaction": result.Transaction,
	})
}
