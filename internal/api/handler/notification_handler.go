package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcircle/social-api/internal/core/ports"
)

// NotificationHandler serves the caller's like/comment notifications.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /api/notifications — newest first.
//
// @Summary      List the caller's notifications
// @Tags         notifications
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Notification
// @Failure      401  {object}  errorResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	notifications, err := h.service.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}
