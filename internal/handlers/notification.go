package handlers

import (
	"errors"

	"smartwallet/internal/services/notification"
	"smartwallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notificationService *notification.Service
}

func NewNotificationHandler(notificationService *notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) GetPreference(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	pref, err := h.notificationService.GetPreference(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "Failed to get notification preference")
	}
	return response.Success(c, "notification preference", pref)
}

func (h *NotificationHandler) UpdatePreference(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req struct {
		Enabled     bool   `json:"enabled"`
		ContactInfo string `json:"contact_info"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	h.notificationService.UpsertPreference(c.Context(), claims.UserID, req.Enabled, req.ContactInfo)
	return response.Success(c, "notification preference updated", nil)
}

// GetLastEmails returns the five most recent emails plus delivery counters.
func (h *NotificationHandler) GetLastEmails(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	emails, err := h.notificationService.GetUserLastEmails(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "Failed to get emails")
	}
	return response.Success(c, "last emails", fiber.Map{
		"emails":       emails,
		"sent_count":   notification.NonFailedCount(emails),
		"failed_count": notification.FailedCount(emails),
	})
}

func (h *NotificationHandler) DeleteAllEmails(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	h.notificationService.DeleteAllEmails(c.Context(), claims.UserID)
	return response.Success(c, "emails deleted", nil)
}

func (h *NotificationHandler) RetryFailedEmails(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	if err := h.notificationService.RetryFailedEmails(c.Context(), claims.UserID); err != nil {
		if errors.Is(err, notification.ErrRetryLater) {
			return response.Error(c, fiber.StatusTooManyRequests, err.Error())
		}
		return response.Error(c, fiber.StatusBadGateway, err.Error())
	}
	return response.Success(c, "failed emails resubmitted", nil)
}
