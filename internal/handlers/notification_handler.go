package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/studence/backend/internal/middleware"
	"github.com/studence/backend/internal/repositories"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.PUT("/notifications/mark-as-seen", h.MarkAllAsSeen)
	g.PUT("/notifications/mark-as-seen/:id", h.MarkAsSeen)
}

// GetNotifications returns the caller's notifications, newest first, with the
// read flag included for the client to filter on
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	user := middleware.CurrentUser(c)

	notifications, err := h.notificationRepository.GetByRecipientID(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch notifications")
	}

	unreadCount, err := h.notificationRepository.GetUnreadCount(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count notifications")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"unread_count":  unreadCount,
	})
}

// MarkAllAsSeen marks every one of the caller's notifications as read.
// Calling it again is a no-op.
func (h *NotificationHandler) MarkAllAsSeen(c echo.Context) error {
	user := middleware.CurrentUser(c)

	if err := h.notificationRepository.MarkAllAsRead(user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update notifications")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notifications marked as seen"})
}

// MarkAsSeen marks a single notification as read. A notification that does
// not exist or belongs to someone else gets the same 404.
func (h *NotificationHandler) MarkAsSeen(c echo.Context) error {
	user := middleware.CurrentUser(c)

	notifID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	updated, err := h.notificationRepository.MarkAsRead(uint(notifID), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update notification")
	}
	if !updated {
		return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as seen"})
}
