package models

import "time"

// Collection persists one serialized entity collection per row, keyed the
// same way the file-backed adapter keys its files.
type Collection struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Data      []byte    `gorm:"type:jsonb;not null" json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}
