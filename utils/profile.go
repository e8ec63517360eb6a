package utils

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"webgestor/models"
)

// EnsureProfile loads the user's profile record. When the row is missing
// (the profile hook failed or the row was removed out of band) it attempts
// exactly one client-side insert with the default role before giving up.
func EnsureProfile(db *gorm.DB, user *models.User) (*models.Profile, error) {
	var profile models.Profile
	err := db.First(&profile, "user_id = ?", user.ID).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := ""
	if user.Name != nil {
		name = *user.Name
	}
	profile = models.Profile{
		ID:     uuid.NewString(),
		UserID: user.ID,
		Email:  user.Email,
		Name:   name,
		Role:   models.RoleCollaborator,
	}
	if err := db.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// PromoteSeedAdmin upgrades the configured seed account to admin on first
// sight. A no-op for every other profile.
func PromoteSeedAdmin(db *gorm.DB, profile *models.Profile, seedEmail, seedName string) error {
	if seedEmail == "" || profile.Email != seedEmail || profile.Role == models.RoleAdmin {
		return nil
	}
	updates := map[string]interface{}{"role": models.RoleAdmin}
	if seedName != "" {
		updates["name"] = seedName
	}
	if err := db.Model(profile).Updates(updates).Error; err != nil {
		return err
	}
	profile.Role = models.RoleAdmin
	if seedName != "" {
		profile.Name = seedName
	}
	return nil
}
