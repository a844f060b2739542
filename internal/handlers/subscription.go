package handlers

import (
	"errors"

	"smartwallet/internal/models"
	"smartwallet/internal/repositories"
	"smartwallet/internal/services/subscription"
	"smartwallet/internal/services/user"
	"smartwallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SubscriptionHandler struct {
	subscriptionService subscription.Service
	userService         user.Service
}

func NewSubscriptionHandler(subscriptionService subscription.Service, userService user.Service) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		userService:         userService,
	}
}

// Upgrade purchases a plan upgrade. A declined charge is a normal response
// carrying the FAILED transaction.
func (h *SubscriptionHandler) Upgrade(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req struct {
		Type     string `json:"type"`
		Period   string `json:"period"`
		WalletID string `json:"wallet_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	if req.Type != models.SubscriptionTypePremium && req.Type != models.SubscriptionTypeUltimate {
		return response.BadRequest(c, "Invalid subscription type")
	}
	if req.Period != models.SubscriptionPeriodMonthly && req.Period != models.SubscriptionPeriodYearly {
		return response.BadRequest(c, "Invalid subscription period")
	}
	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		return response.BadRequest(c, "Invalid wallet id")
	}

	owner, err := h.userService.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "Failed to get user")
	}

	txn, err := h.subscriptionService.Upgrade(c.Context(), owner, subscription.UpgradeRequest{
		Period:   req.Period,
		WalletID: walletID,
	}, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrWalletNotFound):
			return response.NotFound(c, "Wallet not found")
		case errors.Is(err, subscription.ErrNoActiveSubscription):
			return response.ServerError(c, "No active subscription found")
		case errors.Is(err, subscription.ErrPricingNotFound):
			return response.BadRequest(c, "Unknown plan or period")
		default:
			return response.ServerError(c, "Failed to process upgrade")
		}
	}
	return response.Success(c, "upgrade processed", txn)
}

func (h *SubscriptionHandler) GetHistory(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	subs, err := h.subscriptionService.GetAllByOwnerID(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "Failed to get subscriptions")
	}
	return response.Success(c, "subscriptions", subs)
}
