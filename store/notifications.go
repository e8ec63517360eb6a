package store

import (
	"fmt"

	"webgestor/models"
)

// createNotification appends a notification for userID and publishes it on
// the hub. Notifications are a side effect of an already-committed mutation;
// a persistence failure here is logged rather than unwinding the caller.
// Caller holds the write lock.
func (s *Store) createNotification(userID string, typ models.NotificationType, title, message, relatedID string) {
	n := models.Notification{
		ID:        newID(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		Read:      false,
		RelatedID: relatedID,
		CreatedAt: now(),
	}
	next := append(cloneSlice(s.notifications), n)
	if err := persist(s, KeyNotifications, next); err != nil {
		s.logger.Printf("failed to persist notification for user %s: %v", userID, err)
		return
	}
	s.notifications = next
	s.hub.Publish(n)
}

// NotifyDeadlineApproaching emits one deadline_approaching notification for
// the task's assignee. Repeat calls for the same task and assignee are
// no-ops, so the deadline watcher can re-scan freely.
func (s *Store) NotifyDeadlineApproaching(task models.Task) error {
	if task.AssigneeID == "" || task.DueDate == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.Type == models.NotifyDeadlineApproaching && n.UserID == task.AssigneeID && n.RelatedID == task.ID {
			return nil
		}
	}
	s.createNotification(task.AssigneeID, models.NotifyDeadlineApproaching,
		"Deadline approaching",
		fmt.Sprintf("The task %q is due on %s", task.Title, task.DueDate.Format("2006-01-02")),
		task.ID)
	return nil
}

// MarkNotificationRead flips the read flag to true. It never flips back, and
// unknown ids are a no-op.
func (s *Store) MarkNotificationRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.notifications, id, func(n models.Notification) string { return n.ID })
	if idx < 0 || s.notifications[idx].Read {
		return nil
	}
	next := cloneSlice(s.notifications)
	next[idx].Read = true
	if err := persist(s, KeyNotifications, next); err != nil {
		return err
	}
	s.notifications = next
	return nil
}

// MarkAllNotificationsRead flips every unread notification of the acting
// user. Other users' notifications are untouched.
func (s *Store) MarkAllNotificationsRead(actorID string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	next := cloneSlice(s.notifications)
	for i := range next {
		if next[i].UserID == actorID && !next[i].Read {
			next[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := persist(s, KeyNotifications, next); err != nil {
		return err
	}
	s.notifications = next
	return nil
}

// Notifications returns the given user's notifications, most recent first.
func (s *Store) Notifications(userID string) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Notification, 0)
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if s.notifications[i].UserID == userID {
			out = append(out, s.notifications[i])
		}
	}
	return out
}

// UnreadNotificationCount counts the user's notifications still unread.
func (s *Store) UnreadNotificationCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count
}

// NotificationByID returns a notification and whether it exists.
func (s *Store) NotificationByID(id string) (models.Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexByID(s.notifications, id, func(n models.Notification) string { return n.ID })
	if idx < 0 {
		return models.Notification{}, false
	}
	return s.notifications[idx], true
}
