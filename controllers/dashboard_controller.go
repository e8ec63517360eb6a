package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"webgestor/models"
	"webgestor/store"
	"webgestor/utils"
)

type DashboardController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewDashboardController(s *store.Store, logger *log.Logger) *DashboardController {
	return &DashboardController{
		Store:  s,
		Logger: logger,
	}
}

type DashboardStats struct {
	Teams           int     `json:"teams"`
	Projects        int     `json:"projects"`
	TotalTasks      int     `json:"total_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	InProgressTasks int     `json:"in_progress_tasks"`
	OverdueTasks    int     `json:"overdue_tasks"`
	Users           int     `json:"users,omitempty"`
	CompletionRate  float64 `json:"completion_rate"`
}

// GetDashboardStats returns summary numbers scoped to the caller's
// role: admins see the whole workspace, leaders their team, everyone
// else their own assignments.
func (dc *DashboardController) GetDashboardStats(c *fiber.Ctx) error {
	profile := c.Locals("profile").(*models.Profile)

	var stats DashboardStats
	tasks := dc.Store.VisibleTasks(*profile)

	switch profile.Role {
	case models.RoleAdmin:
		stats.Teams = len(dc.Store.Teams())
		stats.Projects = len(dc.Store.Projects())
		stats.Users = len(dc.Store.Users())
	case models.RoleLeader:
		if team, ok := dc.Store.UserTeam(profile.ID); ok {
			stats.Teams = 1
			stats.Projects = len(dc.Store.TeamProjects(team.ID))
		}
	default:
		if _, ok := dc.Store.UserTeam(profile.ID); ok {
			stats.Teams = 1
		}
		seen := map[string]struct{}{}
		for _, t := range tasks {
			seen[t.ProjectID] = struct{}{}
		}
		stats.Projects = len(seen)
	}

	now := time.Now().UTC()
	stats.TotalTasks = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case models.TaskDone:
			stats.CompletedTasks++
		case models.TaskInProgress:
			stats.InProgressTasks++
		}
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != models.TaskDone {
			stats.OverdueTasks++
		}
	}
	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
	}

	return c.JSON(utils.SuccessResponse(stats))
}
