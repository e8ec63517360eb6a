package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"webgestor/models"
	"webgestor/store"
	"webgestor/utils"
)

type ProjectController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewProjectController(s *store.Store, logger *log.Logger) *ProjectController {
	return &ProjectController{
		Store:  s,
		Logger: logger,
	}
}

type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required,min=2,max=100"`
	Description string     `json:"description" validate:"omitempty,max=1000"`
	TeamID      string     `json:"team_id" validate:"required"`
	Status      string     `json:"status" validate:"omitempty,oneof=active completed paused"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Goals       []string   `json:"goals" validate:"omitempty,dive,max=200"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Status      *string    `json:"status" validate:"omitempty,oneof=active completed paused"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Goals       *[]string  `json:"goals"`
}

// ListProjects returns the projects visible to the caller. Admins see
// everything, everyone else sees their own team's projects.
func (pc *ProjectController) ListProjects(c *fiber.Ctx) error {
	profile := c.Locals("profile").(*models.Profile)
	return c.JSON(utils.SuccessResponse(pc.Store.VisibleProjects(*profile)))
}

func (pc *ProjectController) GetProject(c *fiber.Ctx) error {
	project, ok := pc.Store.ProjectByID(c.Params("id"))
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"project": project,
		"tasks":   pc.Store.ProjectTasks(project.ID),
	}))
}

func (pc *ProjectController) CreateProject(c *fiber.Ctx) error {
	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	// The team reference must resolve before anything is written
	if _, ok := pc.Store.TeamByID(req.TeamID); !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown team", nil)
	}

	profile := c.Locals("profile").(*models.Profile)

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		TeamID:      req.TeamID,
		Status:      models.ProjectStatus(req.Status),
		EndDate:     req.EndDate,
		Goals:       req.Goals,
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}

	created, err := pc.Store.CreateProject(profile.ID, project)
	if err != nil {
		pc.Logger.Printf("create project: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create project", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(created))
}

func (pc *ProjectController) UpdateProject(c *fiber.Ctx) error {
	var req UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	id := c.Params("id")
	if _, ok := pc.Store.ProjectByID(id); !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	profile := c.Locals("profile").(*models.Profile)

	update := store.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Goals:       req.Goals,
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		update.Status = &status
	}

	if err := pc.Store.UpdateProject(profile.ID, id, update); err != nil {
		pc.Logger.Printf("update project %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update project", err)
	}

	project, _ := pc.Store.ProjectByID(id)
	return c.JSON(utils.SuccessResponse(project))
}

func (pc *ProjectController) DeleteProject(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := pc.Store.ProjectByID(id); !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	profile := c.Locals("profile").(*models.Profile)

	if err := pc.Store.DeleteProject(profile.ID, id); err != nil {
		if errors.Is(err, store.ErrProjectReferenced) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Project still has tasks", nil)
		}
		pc.Logger.Printf("delete project %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete project", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
