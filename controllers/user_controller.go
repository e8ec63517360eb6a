package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"webgestor/models"
	"webgestor/store"
	"webgestor/utils"
)

type UserController struct {
	Store     *store.Store
	Directory store.UserDirectory
	Logger    *log.Logger
}

func NewUserController(s *store.Store, directory store.UserDirectory, logger *log.Logger) *UserController {
	return &UserController{
		Store:     s,
		Directory: directory,
		Logger:    logger,
	}
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin leader collaborator"`
}

// ListUsers refreshes the user mirror from the directory and returns it.
// A directory failure degrades to the last known mirror.
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	if uc.Directory != nil {
		profiles, err := uc.Directory.ListProfiles()
		if err != nil {
			uc.Logger.Printf("directory refresh: %v", err)
		} else {
			uc.Store.RefreshUsers(profiles)
		}
	}

	return c.JSON(utils.SuccessResponse(uc.Store.Users()))
}

func (uc *UserController) UpdateUserRole(c *fiber.Ctx) error {
	var req UpdateUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	id := c.Params("id")
	profile := c.Locals("profile").(*models.Profile)

	// Admins cannot change their own role; another admin has to do it
	if id == profile.ID {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot change your own role", nil)
	}

	if err := uc.Store.UpdateUserRole(profile.ID, id, req.Role); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
		}
		uc.Logger.Printf("update role for %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update role", err)
	}

	updated, _ := uc.Store.UserByID(id)
	return c.JSON(utils.SuccessResponse(updated))
}
