package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"webgestor/store"
	"webgestor/utils"
)

type ActivityController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewActivityController(s *store.Store, logger *log.Logger) *ActivityController {
	return &ActivityController{
		Store:  s,
		Logger: logger,
	}
}

// ListActivity returns the most recent activity entries, newest first.
// An optional limit query parameter trims the result.
func (ac *ActivityController) ListActivity(c *fiber.Ctx) error {
	entries := ac.Store.Activity()

	limit := utils.ParseInt(c.Query("limit"), len(entries))
	if limit < len(entries) && limit >= 0 {
		entries = entries[:limit]
	}

	return c.JSON(utils.SuccessResponse(entries))
}
