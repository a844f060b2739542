package handlers

import (
	"errors"
	"log"

	"smartwallet/internal/repositories"
	"smartwallet/internal/services/card"
	"smartwallet/internal/services/user"
	"smartwallet/internal/services/wallet"
	"smartwallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	walletService wallet.Service
	userService   user.Service
}

func NewWalletHandler(walletService wallet.Service, userService user.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		userService:   userService,
	}
}

func (h *WalletHandler) GetWallets(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	wallets, err := h.walletService.GetAllByOwnerID(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "Failed to get wallets")
	}
	return response.Success(c, "wallets", wallets)
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	if _, err := extractUserClaims(c); err != nil {
		return response.Unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid wallet id")
	}

	w, err := h.walletService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return response.NotFound(c, "Wallet not found")
		}
		return response.ServerError(c, "Failed to get wallet")
	}
	return response.Success(c, "wallet", w)
}

// TopUp credits a wallet from a tokenized card.
func (h *WalletHandler) TopUp(c *fiber.Ctx) error {
	if _, err := extractUserClaims(c); err != nil {
		return response.Unauthorized(c)
	}

	walletID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid wallet id")
	}

	var req struct {
		Amount      decimal.Decimal `json:"amount"`
		CardNumber  string          `json:"card_number"`
		ExpiryMonth string          `json:"expiry_month"`
		ExpiryYear  string          `json:"expiry_year"`
		CVC         string          `json:"cvc"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	tok, err := card.Tokenize(card.TopUpCard{
		Number:      req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		CVC:         req.CVC,
	})
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	log.Printf("top-up funding source tokenized for wallet %s: %s (%s)", walletID, tok.ID, tok.Brand)

	txn, err := h.walletService.TopUp(c.Context(), walletID, req.Amount)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return response.NotFound(c, "Wallet not found")
		}
		if errors.Is(err, wallet.ErrInvalidAmount) {
			return response.BadRequest(c, "Amount must be greater than 0")
		}
		return response.ServerError(c, "Failed to top up wallet")
	}
	return response.Success(c, "top up processed", txn)
}

// Unlock provisions an additional wallet when the user's plan allows it.
func (h *WalletHandler) Unlock(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	owner, err := h.userService.GetByIDWithRelations(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "Failed to get user")
	}

	w, err := h.walletService.UnlockNewWallet(c.Context(), owner)
	if err != nil {
		if errors.Is(err, wallet.ErrNotEligible) {
			return response.BadRequest(c, "Your plan does not allow another wallet")
		}
		return response.ServerError(c, "Failed to unlock wallet")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "wallet unlocked",
		"data":    w,
	})
}

// SwitchStatus toggles a wallet between ACTIVE and INACTIVE.
func (h *WalletHandler) SwitchStatus(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid wallet id")
	}

	w, err := h.walletService.SwitchStatus(c.Context(), claims.UserID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return response.NotFound(c, "Wallet not found")
		}
		if errors.Is(err, wallet.ErrNotWalletOwner) {
			return response.Error(c, fiber.StatusForbidden, "Wallet is not yours")
		}
		return response.ServerError(c, "Failed to switch wallet status")
	}
	return response.Success(c, "wallet status switched", w)
}

func (h *WalletHandler) SetNickname(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid wallet id")
	}

	var req struct {
		Nickname string `json:"nickname"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	w, err := h.walletService.SetNickname(c.Context(), claims.UserID, id, req.Nickname)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return response.NotFound(c, "Wallet not found")
		}
		if errors.Is(err, wallet.ErrNotWalletOwner) {
			return response.Error(c, fiber.StatusForbidden, "Wallet is not yours")
		}
		return response.ServerError(c, "Failed to rename wallet")
	}
	return response.Success(c, "wallet renamed", w)
}
