package store

import (
	"webgestor/models"
)

// Derived read views. All of them are plain scans over the current in-memory
// collections, recomputed per call.

func (s *Store) Teams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.teams)
}

func (s *Store) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.projects)
}

func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.tasks)
}

func (s *Store) TeamByID(id string) (models.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := indexByID(s.teams, id, func(t models.Team) string { return t.ID }); idx >= 0 {
		return s.teams[idx], true
	}
	return models.Team{}, false
}

func (s *Store) ProjectByID(id string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := indexByID(s.projects, id, func(p models.Project) string { return p.ID }); idx >= 0 {
		return s.projects[idx], true
	}
	return models.Project{}, false
}

func (s *Store) TaskByID(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := indexByID(s.tasks, id, func(t models.Task) string { return t.ID }); idx >= 0 {
		return s.tasks[idx], true
	}
	return models.Task{}, false
}

func (s *Store) UserByID(id string) (models.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := indexByID(s.users, id, func(p models.Profile) string { return p.ID }); idx >= 0 {
		return s.users[idx], true
	}
	return models.Profile{}, false
}

// TeamMembers resolves a team's membership rows to profiles.
func (s *Store) TeamMembers(teamID string) []models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make(map[string]struct{})
	for _, m := range s.members {
		if m.TeamID == teamID {
			ids[m.UserID] = struct{}{}
		}
	}
	out := make([]models.Profile, 0, len(ids))
	for _, u := range s.users {
		if _, ok := ids[u.ID]; ok {
			out = append(out, u)
		}
	}
	return out
}

func (s *Store) TeamProjects(teamID string) []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teamProjectsLocked(teamID)
}

func (s *Store) teamProjectsLocked(teamID string) []models.Project {
	out := make([]models.Project, 0)
	for _, p := range s.projects {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) ProjectTasks(projectID string) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectTasksLocked(projectID)
}

func (s *Store) projectTasksLocked(projectID string) []models.Task {
	out := make([]models.Task, 0)
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) TaskComments(taskID string) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out
}

// UserTasks returns the tasks assigned to the given user.
func (s *Store) UserTasks(userID string) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0)
	for _, t := range s.tasks {
		if t.AssigneeID == userID {
			out = append(out, t)
		}
	}
	return out
}

// UserTeam returns the team of the user's first membership record. Users
// belong to at most one team in practice; the data model does not enforce
// it.
func (s *Store) UserTeam(userID string) (models.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userTeamLocked(userID)
}

func (s *Store) userTeamLocked(userID string) (models.Team, bool) {
	for _, m := range s.members {
		if m.UserID == userID {
			if idx := indexByID(s.teams, m.TeamID, func(t models.Team) string { return t.ID }); idx >= 0 {
				return s.teams[idx], true
			}
			return models.Team{}, false
		}
	}
	return models.Team{}, false
}

// VisibleProjects applies role scoping: admins see everything, everyone else
// sees their team's projects.
func (s *Store) VisibleProjects(viewer models.Profile) []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if viewer.Role == models.RoleAdmin {
		return cloneSlice(s.projects)
	}
	team, ok := s.userTeamLocked(viewer.ID)
	if !ok {
		return []models.Project{}
	}
	return s.teamProjectsLocked(team.ID)
}

// VisibleTasks applies role scoping: admins see everything, leaders see
// their team's tasks, collaborators see their own assignments.
func (s *Store) VisibleTasks(viewer models.Profile) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch viewer.Role {
	case models.RoleAdmin:
		return cloneSlice(s.tasks)
	case models.RoleLeader:
		team, ok := s.userTeamLocked(viewer.ID)
		if !ok {
			return []models.Task{}
		}
		out := make([]models.Task, 0)
		for _, p := range s.teamProjectsLocked(team.ID) {
			out = append(out, s.projectTasksLocked(p.ID)...)
		}
		return out
	default:
		out := make([]models.Task, 0)
		for _, t := range s.tasks {
			if t.AssigneeID == viewer.ID {
				out = append(out, t)
			}
		}
		return out
	}
}
