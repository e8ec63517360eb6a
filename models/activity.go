package models

import "time"

type ActivityEntity string

const (
	EntityTeam    ActivityEntity = "team"
	EntityProject ActivityEntity = "project"
	EntityTask    ActivityEntity = "task"
	EntityUser    ActivityEntity = "user"
)

// ActivityLog is one entry in the capped, most-recent-first audit trail of
// mutating operations.
type ActivityLog struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	Action     string         `json:"action"`
	EntityType ActivityEntity `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Details    string         `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
