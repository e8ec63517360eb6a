package models

import "time"

type NotificationType string

const (
	NotifyTaskAssigned        NotificationType = "task_assigned"
	NotifyDeadlineApproaching NotificationType = "deadline_approaching"
	NotifyStatusChanged       NotificationType = "status_changed"
	NotifyNewComment          NotificationType = "new_comment"
)

// Notification is a system-generated message to a specific user about a
// task-related event. Read defaults to false and only ever flips to true.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	RelatedID string           `json:"related_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
