package controller

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"webgestor/models"
	"webgestor/store"
	"webgestor/utils"
)

type TaskController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewTaskController(s *store.Store, logger *log.Logger) *TaskController {
	return &TaskController{
		Store:  s,
		Logger: logger,
	}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=2,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	ProjectID   string     `json:"project_id" validate:"required"`
	AssigneeID  string     `json:"assignee_id"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	AssigneeID  *string    `json:"assignee_id"`
	Status      *string    `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"due_date"`
}

type AddCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// canEditTask mirrors the edit rule used across the UI: admins and
// leaders manage any task they can see, collaborators only their own.
func canEditTask(profile *models.Profile, task models.Task) bool {
	switch profile.Role {
	case models.RoleAdmin, models.RoleLeader:
		return true
	default:
		return task.AssigneeID == profile.ID
	}
}

// ListTasks returns the caller's visible tasks, optionally filtered by
// status, priority and a case-insensitive title/description search.
func (tc *TaskController) ListTasks(c *fiber.Ctx) error {
	profile := c.Locals("profile").(*models.Profile)
	tasks := tc.Store.VisibleTasks(*profile)

	status := c.Query("status")
	priority := c.Query("priority")
	search := strings.ToLower(c.Query("search"))

	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if status != "" && string(t.Status) != status {
			continue
		}
		if priority != "" && string(t.Priority) != priority {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		filtered = append(filtered, t)
	}

	return c.JSON(utils.SuccessResponse(filtered))
}

func (tc *TaskController) GetTask(c *fiber.Ctx) error {
	task, ok := tc.Store.TaskByID(c.Params("id"))
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"task":     task,
		"comments": tc.Store.TaskComments(task.ID),
	}))
}

func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	if _, ok := tc.Store.ProjectByID(req.ProjectID); !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown project", nil)
	}

	profile := c.Locals("profile").(*models.Profile)

	created, err := tc.Store.CreateTask(profile.ID, models.Task{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
	})
	if err != nil {
		tc.Logger.Printf("create task: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create task", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(created))
}

func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	id := c.Params("id")
	task, ok := tc.Store.TaskByID(id)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	profile := c.Locals("profile").(*models.Profile)
	if !canEditTask(profile, task) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not allowed to edit this task", nil)
	}

	update := store.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		update.Priority = &priority
	}

	if err := tc.Store.UpdateTask(profile.ID, id, update); err != nil {
		tc.Logger.Printf("update task %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update task", err)
	}

	updated, _ := tc.Store.TaskByID(id)
	return c.JSON(utils.SuccessResponse(updated))
}

func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")
	task, ok := tc.Store.TaskByID(id)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	profile := c.Locals("profile").(*models.Profile)
	if !canEditTask(profile, task) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not allowed to delete this task", nil)
	}

	if err := tc.Store.DeleteTask(profile.ID, id); err != nil {
		tc.Logger.Printf("delete task %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete task", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (tc *TaskController) ListComments(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := tc.Store.TaskByID(id); !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	return c.JSON(utils.SuccessResponse(tc.Store.TaskComments(id)))
}

func (tc *TaskController) AddComment(c *fiber.Ctx) error {
	var req AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	id := c.Params("id")
	if _, ok := tc.Store.TaskByID(id); !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	profile := c.Locals("profile").(*models.Profile)

	comment, err := tc.Store.AddComment(profile.ID, id, req.Content)
	if err != nil {
		tc.Logger.Printf("add comment to task %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to add comment", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(comment))
}
