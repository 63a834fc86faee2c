package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	notifications NotificationStore
}

func NewNotificationHandler(notifications NotificationStore) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes. All of them
// require authentication.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	n := g.Group("/notifications", requireAuth)
	n.GET("", h.GetNotifications)
	n.GET("/unread-count", h.GetUnreadCount)
	n.PUT("/read-all", h.MarkAllAsRead)
	n.PUT("/:id/read", h.MarkAsRead)
}

// GetNotifications lists the caller's notifications with the acting user
// attached, oldest first.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)
	list := h.notifications.ListNotifications(user.ID)
	return c.JSON(http.StatusOK, h.notifications.EnrichNotifications(list))
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, echo.Map{"unread_count": h.notifications.UnreadCount(user.ID)})
}

func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)

	err := h.notifications.MarkRead(user.ID, c.Param("id"))
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
	case errors.Is(err, apperrors.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to access this notification")
	case err != nil:
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)
	updated := h.notifications.MarkAllRead(user.ID)
	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read", "updated": updated})
}
