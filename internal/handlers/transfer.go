package handlers

import (
	"errors"

	"smartwallet/internal/repositories"
	"smartwallet/internal/services/wallet"
	"smartwallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferHandler exposes wallet-to-wallet transfers.
type TransferHandler struct {
	walletService wallet.Service
}

func NewTransferHandler(walletService wallet.Service) *TransferHandler {
	return &TransferHandler{walletService: walletService}
}

// Transfer moves funds to another user's active wallet. Business failures
// come back as a FAILED transaction in a normal response.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	if _, err := extractUserClaims(c); err != nil {
		return response.Unauthorized(c)
	}

	var req struct {
		FromWalletID      string          `json:"from_wallet_id"`
		RecipientUsername string          `json:"recipient_username"`
		Amount            decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	fromWalletID, err := uuid.Parse(req.FromWalletID)
	if err != nil {
		return response.BadRequest(c, "Invalid wallet id")
	}

	txn, err := h.walletService.Transfer(c.Context(), wallet.TransferRequest{
		FromWalletID:      fromWalletID,
		RecipientUsername: req.RecipientUsername,
		Amount:            req.Amount,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return response.NotFound(c, "Wallet not found")
		}
		if errors.Is(err, wallet.ErrInvalidAmount) {
			return response.BadRequest(c, "Amount must be greater than 0")
		}
		return response.ServerError(c, "Failed to process transfer")
	}
	return response.Success(c, "transfer processed", txn)
}
