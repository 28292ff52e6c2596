package repository

import (
	"context"
	"fmt"

	"github.com/gea-verde/gea-api/internal/pkg/greencoins"
	"github.com/gea-verde/gea-api/internal/repository/dao"
)

var ErrLevelNotFound = dao.ErrLevelNotFound

type GamificationDAO interface {
	FindAllOrdered(ctx context.Context) ([]dao.GamificationLevel, error)
	Insert(ctx context.Context, level dao.GamificationLevel) (dao.GamificationLevel, error)
	Update(ctx context.Context, level dao.GamificationLevel) (dao.GamificationLevel, error)
	Delete(ctx context.Context, id uint) error
	SeedDefaults(ctx context.Context, levels []dao.GamificationLevel) error
}

type GamificationRepository struct {
	dao GamificationDAO
}

func NewGamificationRepository(dao GamificationDAO) *GamificationRepository {
	return &GamificationRepository{
		dao: dao,
	}
}

// LoadTable builds the validated level table from storage. An empty
// table is reported as an error so callers can fall back explicitly.
func (r *GamificationRepository) LoadTable(ctx context.Context) (greencoins.Table, error) {
	found, err := r.dao.FindAllOrdered(ctx)
	if err != nil {
		return greencoins.Table{}, fmt.Errorf("r.dao.FindAllOrdered -> %w", err)
	}

	levels := make([]greencoins.Level, len(found))
	for i, l := range found {
		levels[i] = r.daoToLevel(l)
	}

	table, err := greencoins.NewTable(levels)
	if err != nil {
		return greencoins.Table{}, fmt.Errorf("greencoins.NewTable -> %w", err)
	}

	return table, nil
}

func (r *GamificationRepository) FindAll(ctx context.Context) ([]greencoins.Level, error) {
	found, err := r.dao.FindAllOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllOrdered -> %w", err)
	}

	levels := make([]greencoins.Level, len(found))
	for i, l := range found {
		levels[i] = r.daoToLevel(l)
	}

	return levels, nil
}

func (r *GamificationRepository) Create(ctx context.Context, level greencoins.Level) (greencoins.Level, error) {
	created, err := r.dao.Insert(ctx, r.levelToDao(level))
	if err != nil {
		return greencoins.Level{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToLevel(created), nil
}

// Update addresses the row by level number, the natural key exposed to
// the admin surface.
func (r *GamificationRepository) Update(ctx context.Context, level greencoins.Level) (greencoins.Level, error) {
	found, err := r.dao.FindAllOrdered(ctx)
	if err != nil {
		return greencoins.Level{}, fmt.Errorf("r.dao.FindAllOrdered -> %w", err)
	}

	for _, existing := range found {
		if existing.Level == level.Level {
			row := r.levelToDao(level)
			row.ID = existing.ID

			updated, err := r.dao.Update(ctx, row)
			if err != nil {
				return greencoins.Level{}, fmt.Errorf("r.dao.Update -> %w", err)
			}

			return r.daoToLevel(updated), nil
		}
	}

	return greencoins.Level{}, ErrLevelNotFound
}

func (r *GamificationRepository) Delete(ctx context.Context, levelNumber int) error {
	found, err := r.dao.FindAllOrdered(ctx)
	if err != nil {
		return fmt.Errorf("r.dao.FindAllOrdered -> %w", err)
	}

	for _, existing := range found {
		if existing.Level == levelNumber {
			if err := r.dao.Delete(ctx, existing.ID); err != nil {
				return fmt.Errorf("r.dao.Delete -> %w", err)
			}

			return nil
		}
	}

	return ErrLevelNotFound
}

func (r *GamificationRepository) SeedDefaults(ctx context.Context, table greencoins.Table) error {
	levels := table.Levels()
	rows := make([]dao.GamificationLevel, len(levels))
	for i, l := range levels {
		rows[i] = r.levelToDao(l)
	}

	if err := r.dao.SeedDefaults(ctx, rows); err != nil {
		return fmt.Errorf("r.dao.SeedDefaults -> %w", err)
	}

	return nil
}

func (r *GamificationRepository) levelToDao(l greencoins.Level) dao.GamificationLevel {
	return dao.GamificationLevel{
		Level:     l.Level,
		Title:     l.Title,
		MinPoints: l.MinPoints,
		Icon:      l.Icon,
		Color:     l.Color,
	}
}

func (r *GamificationRepository) daoToLevel(l dao.GamificationLevel) greencoins.Level {
	return greencoins.Level{
		Level:     l.Level,
		Title:     l.Title,
		MinPoints: l.MinPoints,
		Icon:      l.Icon,
		Color:     l.Color,
	}
}
