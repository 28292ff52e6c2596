package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrLevelNotFound = errors.New("gamification level not found")

type GamificationLevel struct {
	ID uint `gorm:"primaryKey"`

	Level     int    `gorm:"uniqueIndex;not null"`
	Title     string `gorm:"not null"`
	MinPoints int    `gorm:"not null"`
	Icon      string
	Color     string
}

type GamificationDAO struct {
	db *gorm.DB
}

func NewGamificationDAO(db *gorm.DB) *GamificationDAO {
	return &GamificationDAO{
		db: db,
	}
}

func (d *GamificationDAO) FindAllOrdered(ctx context.Context) ([]GamificationLevel, error) {
	var levels []GamificationLevel

	result := d.db.WithContext(ctx).Order("level").Find(&levels)
	if result.Error != nil {
		return nil, result.Error
	}

	return levels, nil
}

func (d *GamificationDAO) Insert(ctx context.Context, level GamificationLevel) (GamificationLevel, error) {
	result := d.db.WithContext(ctx).Create(&level)
	if result.Error != nil {
		return GamificationLevel{}, result.Error
	}

	return level, nil
}

func (d *GamificationDAO) Update(ctx context.Context, level GamificationLevel) (GamificationLevel, error) {
	result := d.db.WithContext(ctx).Model(&GamificationLevel{}).Where("id = ?", level.ID).Updates(map[string]any{
		"level":      level.Level,
		"title":      level.Title,
		"min_points": level.MinPoints,
		"icon":       level.Icon,
		"color":      level.Color,
	})
	if result.Error != nil {
		return GamificationLevel{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GamificationLevel{}, ErrLevelNotFound
	}

	return level, nil
}

func (d *GamificationDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&GamificationLevel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLevelNotFound
	}

	return nil
}

// SeedDefaults inserts the given levels if the table is empty.
func (d *GamificationDAO) SeedDefaults(ctx context.Context, levels []GamificationLevel) error {
	var count int64
	if err := d.db.WithContext(ctx).Model(&GamificationLevel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return d.db.WithContext(ctx).Create(&levels).Error
}
