package store

import (
	"fmt"
	"time"

	"webgestor/models"
)

// TaskUpdate carries the mergeable fields of a task. Nil means unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	AssigneeID  *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	DueDate     *time.Time
}

// CreateTask assigns a fresh id and timestamps, persists and logs. New tasks
// always start in todo. An assignee other than the actor gets a
// task_assigned notification.
func (s *Store) CreateTask(actorID string, task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := now()
	task.ID = newID()
	task.Status = models.TaskTodo
	task.CreatedAt = ts
	task.UpdatedAt = ts
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	next := append(cloneSlice(s.tasks), task)
	if err := persist(s, KeyTasks, next); err != nil {
		return models.Task{}, err
	}
	s.tasks = next
	s.logActivity(actorID, "Task created", models.EntityTask, task.ID, task.Title)

	if task.AssigneeID != "" && task.AssigneeID != actorID {
		s.createNotification(task.AssigneeID, models.NotifyTaskAssigned,
			"New task assigned",
			fmt.Sprintf("You were assigned the task: %s", task.Title),
			task.ID)
	}
	return task, nil
}

// UpdateTask merges the given fields and refreshes UpdatedAt. Unknown ids
// are a silent no-op. A status transition logs the transition and notifies
// the task's assignee; a reassignment notifies the new assignee. Either way
// exactly one activity entry is written.
func (s *Store) UpdateTask(actorID, id string, updates TaskUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.tasks, id, func(t models.Task) string { return t.ID })
	if idx < 0 {
		return nil
	}
	old := s.tasks[idx]

	next := cloneSlice(s.tasks)
	t := &next[idx]
	if updates.Title != nil {
		t.Title = *updates.Title
	}
	if updates.Description != nil {
		t.Description = *updates.Description
	}
	if updates.AssigneeID != nil {
		t.AssigneeID = *updates.AssigneeID
	}
	if updates.Status != nil {
		t.Status = *updates.Status
	}
	if updates.Priority != nil {
		t.Priority = *updates.Priority
	}
	if updates.DueDate != nil {
		t.DueDate = updates.DueDate
	}
	t.UpdatedAt = now()

	if err := persist(s, KeyTasks, next); err != nil {
		return err
	}
	s.tasks = next
	updated := *t

	statusChanged := updates.Status != nil && *updates.Status != old.Status
	if statusChanged {
		s.logActivity(actorID, fmt.Sprintf("Status changed to %s", updated.Status), models.EntityTask, id, "")
	} else {
		s.logActivity(actorID, "Task updated", models.EntityTask, id, "")
	}

	if updates.AssigneeID != nil && *updates.AssigneeID != old.AssigneeID &&
		*updates.AssigneeID != "" && *updates.AssigneeID != actorID {
		s.createNotification(*updates.AssigneeID, models.NotifyTaskAssigned,
			"New task assigned",
			fmt.Sprintf("You were assigned the task: %s", updated.Title),
			id)
	}
	if statusChanged && updated.AssigneeID != "" && updated.AssigneeID != actorID {
		s.createNotification(updated.AssigneeID, models.NotifyStatusChanged,
			"Task status changed",
			fmt.Sprintf("The task %q moved to: %s", updated.Title, updated.Status),
			id)
	}
	return nil
}

// DeleteTask removes the task record. Comments stay behind as immutable
// audit records. Unknown ids are a no-op.
func (s *Store) DeleteTask(actorID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.tasks, id, func(t models.Task) string { return t.ID })
	if idx < 0 {
		return nil
	}
	next := removeAt(s.tasks, idx)
	if err := persist(s, KeyTasks, next); err != nil {
		return err
	}
	s.tasks = next
	s.logActivity(actorID, "Task deleted", models.EntityTask, id, "")
	return nil
}

// AddComment appends an immutable comment by the acting user. The task's
// assignee, when different from the author, gets a new_comment notification.
func (s *Store) AddComment(actorID, taskID, content string) (models.Comment, error) {
	if actorID == "" {
		return models.Comment{}, ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	comment := models.Comment{
		ID:        newID(),
		TaskID:    taskID,
		UserID:    actorID,
		Content:   content,
		CreatedAt: now(),
	}
	next := append(cloneSlice(s.comments), comment)
	if err := persist(s, KeyComments, next); err != nil {
		return models.Comment{}, err
	}
	s.comments = next

	if idx := indexByID(s.tasks, taskID, func(t models.Task) string { return t.ID }); idx >= 0 {
		task := s.tasks[idx]
		if task.AssigneeID != "" && task.AssigneeID != actorID {
			s.createNotification(task.AssigneeID, models.NotifyNewComment,
				"New comment",
				fmt.Sprintf("New comment on the task: %s", task.Title),
				taskID)
		}
	}
	return comment, nil
}
