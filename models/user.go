package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles recognized by the application. Admins manage users, teams and
// projects; leaders run a single team; collaborators work on assigned tasks.
const (
	RoleAdmin        = "admin"
	RoleLeader       = "leader"
	RoleCollaborator = "collaborator"
)

// User represents an auth account. Domain-facing identity lives on the
// Profile row created alongside it.
type User struct {
	gorm.Model

	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Name         *string `json:"name,omitempty"`

	IsActive     bool `gorm:"default:true" json:"is_active"`
	TokenVersion int  `gorm:"default:1" json:"-"`

	Timezone string `gorm:"default:'UTC'" json:"timezone"`
	Language string `gorm:"default:'pt-BR'" json:"language"`
}

// Profile is the provisioning record exposed to the domain layer. Its string
// ID is the opaque identifier every domain entity references. Rows are
// created by the AfterCreate hook below; when that fails the auth layer falls
// back to a single client-side insert (utils.EnsureProfile).
type Profile struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	UserID    uint    `gorm:"uniqueIndex;not null" json:"-"`
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	Name      string  `gorm:"not null" json:"name"`
	Role      string  `gorm:"default:'collaborator'" json:"role"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	TeamID    *string `gorm:"index" json:"team_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AfterCreate mirrors the hosted backend's profile trigger: every new auth
// account gets a profile row with the default role.
func (u *User) AfterCreate(tx *gorm.DB) error {
	name := ""
	if u.Name != nil {
		name = *u.Name
	}
	profile := Profile{
		ID:     uuid.NewString(),
		UserID: u.ID,
		Email:  u.Email,
		Name:   name,
		Role:   RoleCollaborator,
	}
	return tx.Create(&profile).Error
}
