package store

import (
	"time"

	"webgestor/models"
)

// ProjectUpdate carries the mergeable fields of a project. Nil means
// unchanged.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Goals       *[]string
}

// CreateProject assigns a fresh id and creation timestamp, persists and
// logs. The team reference is taken as given; callers validate it.
func (s *Store) CreateProject(actorID string, project models.Project) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project.ID = newID()
	project.CreatedAt = now()
	if project.Status == "" {
		project.Status = models.ProjectActive
	}

	next := append(cloneSlice(s.projects), project)
	if err := persist(s, KeyProjects, next); err != nil {
		return models.Project{}, err
	}
	s.projects = next
	s.logActivity(actorID, "Project created", models.EntityProject, project.ID, project.Name)
	return project, nil
}

// UpdateProject merges the given fields. Unknown ids are a silent no-op.
func (s *Store) UpdateProject(actorID, id string, updates ProjectUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.projects, id, func(p models.Project) string { return p.ID })
	if idx < 0 {
		return nil
	}

	next := cloneSlice(s.projects)
	p := &next[idx]
	if updates.Name != nil {
		p.Name = *updates.Name
	}
	if updates.Description != nil {
		p.Description = *updates.Description
	}
	if updates.Status != nil {
		p.Status = *updates.Status
	}
	if updates.StartDate != nil {
		p.StartDate = *updates.StartDate
	}
	if updates.EndDate != nil {
		p.EndDate = updates.EndDate
	}
	if updates.Goals != nil {
		p.Goals = *updates.Goals
	}

	if err := persist(s, KeyProjects, next); err != nil {
		return err
	}
	s.projects = next
	s.logActivity(actorID, "Project updated", models.EntityProject, id, "")
	return nil
}

// DeleteProject removes the project record. Deletion is blocked while tasks
// still reference the project. Unknown ids are a no-op.
func (s *Store) DeleteProject(actorID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.projects, id, func(p models.Project) string { return p.ID })
	if idx < 0 {
		return nil
	}
	for _, t := range s.tasks {
		if t.ProjectID == id {
			return ErrProjectReferenced
		}
	}

	next := removeAt(s.projects, idx)
	if err := persist(s, KeyProjects, next); err != nil {
		return err
	}
	s.projects = next
	s.logActivity(actorID, "Project deleted", models.EntityProject, id, "")
	return nil
}
