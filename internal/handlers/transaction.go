package handlers

import (
	"strconv"

	"smartwallet/internal/repositories"
	"smartwallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	repo repositories.TransactionRepository
}

func NewTransactionHandler(repo repositories.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{repo: repo}
}

// GetHistory returns the caller's ledger, newest first. An optional "limit"
// query parameter caps the result.
func (h *TransactionHandler) GetHistory(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit <= 0 {
			return response.BadRequest(c, "Invalid limit")
		}
		txns, err := h.repo.GetLastByOwnerID(claims.UserID, limit)
		if err != nil {
			return response.ServerError(c, "Failed to get transactions")
		}
		return response.Success(c, "transactions", txns)
	}

	txns, err := h.repo.GetAllByOwnerID(claims.UserID)
	if err != nil {
		return response.ServerError(c, "Failed to get transactions")
	}
	return response.Success(c, "transactions", txns)
}
