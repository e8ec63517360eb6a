package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"webgestor/models"
)

// GormStorage persists collections into the collections table, one row per
// key. It is the hosted counterpart of FileStorage.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func (gs *GormStorage) Load(key string) ([]byte, error) {
	var row models.Collection
	err := gs.db.First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", key, err)
	}
	return row.Data, nil
}

func (gs *GormStorage) Save(key string, data []byte) error {
	row := models.Collection{Key: key, Data: data}
	err := gs.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", key, err)
	}
	return nil
}
