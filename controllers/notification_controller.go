package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"webgestor/models"
	"webgestor/store"
	"webgestor/utils"
)

type NotificationController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewNotificationController(s *store.Store, logger *log.Logger) *NotificationController {
	return &NotificationController{
		Store:  s,
		Logger: logger,
	}
}

func (nc *NotificationController) ListNotifications(c *fiber.Ctx) error {
	profile := c.Locals("profile").(*models.Profile)
	return c.JSON(utils.SuccessResponse(nc.Store.Notifications(profile.ID)))
}

func (nc *NotificationController) UnreadCount(c *fiber.Ctx) error {
	profile := c.Locals("profile").(*models.Profile)
	return c.JSON(utils.SuccessResponse(fiber.Map{
		"count": nc.Store.UnreadNotificationCount(profile.ID),
	}))
}

func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	profile := c.Locals("profile").(*models.Profile)

	notification, ok := nc.Store.NotificationByID(id)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Notification not found", nil)
	}
	// Only the recipient can mark their notification
	if notification.UserID != profile.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not your notification", nil)
	}

	if err := nc.Store.MarkNotificationRead(id); err != nil {
		nc.Logger.Printf("mark notification %s read: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to mark notification", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (nc *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	profile := c.Locals("profile").(*models.Profile)

	if err := nc.Store.MarkAllNotificationsRead(profile.ID); err != nil {
		nc.Logger.Printf("mark all notifications read for %s: %v", profile.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to mark notifications", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
