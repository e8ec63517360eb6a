package store

import (
	"fmt"

	"gorm.io/gorm"

	"webgestor/models"
)

// GormDirectory backs UserDirectory with the profiles table.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) ListProfiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := d.db.Order("created_at").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (d *GormDirectory) UpdateProfileRole(userID, role string) error {
	res := d.db.Model(&models.Profile{}).Where("id = ?", userID).Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("failed to update role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
