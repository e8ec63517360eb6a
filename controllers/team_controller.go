package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"webgestor/models"
	"webgestor/store"
	"webgestor/utils"
)

type TeamController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewTeamController(s *store.Store, logger *log.Logger) *TeamController {
	return &TeamController{
		Store:  s,
		Logger: logger,
	}
}

type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	LeaderID    string `json:"leader_id" validate:"omitempty,uuid4"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	LeaderID    *string `json:"leader_id"`
}

type TeamMemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

func (tc *TeamController) ListTeams(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(tc.Store.Teams()))
}

func (tc *TeamController) GetTeam(c *fiber.Ctx) error {
	team, ok := tc.Store.TeamByID(c.Params("id"))
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Team not found", nil)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"team":     team,
		"members":  tc.Store.TeamMembers(team.ID),
		"projects": tc.Store.TeamProjects(team.ID),
	}))
}

func (tc *TeamController) CreateTeam(c *fiber.Ctx) error {
	var req CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	profile := c.Locals("profile").(*models.Profile)

	team, err := tc.Store.CreateTeam(profile.ID, models.Team{
		Name:        req.Name,
		Description: req.Description,
		LeaderID:    req.LeaderID,
	})
	if err != nil {
		tc.Logger.Printf("create team: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create team", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(team))
}

func (tc *TeamController) UpdateTeam(c *fiber.Ctx) error {
	var req UpdateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	id := c.Params("id")
	if _, ok := tc.Store.TeamByID(id); !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Team not found", nil)
	}

	profile := c.Locals("profile").(*models.Profile)

	if err := tc.Store.UpdateTeam(profile.ID, id, store.TeamUpdate{
		Name:        req.Name,
		Description: req.Description,
		LeaderID:    req.LeaderID,
	}); err != nil {
		tc.Logger.Printf("update team %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update team", err)
	}

	team, _ := tc.Store.TeamByID(id)
	return c.JSON(utils.SuccessResponse(team))
}

func (tc *TeamController) DeleteTeam(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := tc.Store.TeamByID(id); !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Team not found", nil)
	}

	profile := c.Locals("profile").(*models.Profile)

	if err := tc.Store.DeleteTeam(profile.ID, id); err != nil {
		if errors.Is(err, store.ErrTeamReferenced) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Team still has projects", nil)
		}
		tc.Logger.Printf("delete team %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete team", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (tc *TeamController) ListMembers(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := tc.Store.TeamByID(id); !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Team not found", nil)
	}

	return c.JSON(utils.SuccessResponse(tc.Store.TeamMembers(id)))
}

func (tc *TeamController) AddMember(c *fiber.Ctx) error {
	var req TeamMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	id := c.Params("id")
	if _, ok := tc.Store.TeamByID(id); !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Team not found", nil)
	}

	profile := c.Locals("profile").(*models.Profile)

	if err := tc.Store.AddTeamMember(profile.ID, id, req.UserID); err != nil {
		tc.Logger.Printf("add member to team %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to add member", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(tc.Store.TeamMembers(id)))
}

func (tc *TeamController) RemoveMember(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := tc.Store.TeamByID(id); !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Team not found", nil)
	}

	profile := c.Locals("profile").(*models.Profile)

	if err := tc.Store.RemoveTeamMember(profile.ID, id, c.Params("userId")); err != nil {
		tc.Logger.Printf("remove member from team %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to remove member", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
