package handlers

import (
	"errors"
	"time"

	"bookhive/internal/adapters/http/middleware"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NotificationHandler handles inbox endpoints
type NotificationHandler struct {
	notifyRepo repositories.NotificationRepository
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifyRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifyRepo: notifyRepo}
}

// ListMine handles GET /api/v1/notifications/me
func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	items, err := h.notifyRepo.ListByUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "failed to list notifications")
	}

	unread, err := h.notifyRepo.CountUnread(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "failed to count unread")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
		"unread":  unread,
	})
}

// MarkRead handles PATCH /api/v1/notifications/:id/read. Only the owner's
// rows are reachable; anyone else's id reads as not found.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid notification id")
	}

	if err := h.notifyRepo.MarkRead(c.Context(), uint(id), middleware.UserID(c), time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "notification not found")
		}
		return response.InternalServerError(c, "failed to mark notification read")
	}
	return response.Success(c, "Notification read", nil)
}

// MarkAllRead handles POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notifyRepo.MarkAllRead(c.Context(), middleware.UserID(c), time.Now()); err != nil {
		return response.InternalServerError(c, "failed to mark notifications read")
	}
	return response.Success(c, "All notifications read", nil)
}
