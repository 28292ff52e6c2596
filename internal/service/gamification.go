package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gea-verde/gea-api/internal/pkg/greencoins"
	"github.com/gea-verde/gea-api/internal/repository"
)

var (
	ErrLevelNotFound = repository.ErrLevelNotFound
	ErrInvalidLevel  = errors.New("invalid level definition")
)

type GamificationRepository interface {
	LoadTable(ctx context.Context) (greencoins.Table, error)
	FindAll(ctx context.Context) ([]greencoins.Level, error)
	Create(ctx context.Context, level greencoins.Level) (greencoins.Level, error)
	Update(ctx context.Context, level greencoins.Level) (greencoins.Level, error)
	Delete(ctx context.Context, levelNumber int) error
	SeedDefaults(ctx context.Context, table greencoins.Table) error
}

type GamificationService struct {
	repo GamificationRepository
}

func NewGamificationService(repo GamificationRepository) *GamificationService {
	return &GamificationService{
		repo: repo,
	}
}

// Seed installs the built-in progression on first boot. It is a no-op
// once any levels exist.
func (s *GamificationService) Seed(ctx context.Context) error {
	if err := s.repo.SeedDefaults(ctx, greencoins.DefaultTable()); err != nil {
		return fmt.Errorf("s.repo.SeedDefaults -> %w", err)
	}

	return nil
}

// LoadTable returns the configured progression, falling back to the
// built-in table when storage has nothing usable. Edits to the stored
// levels take effect on the next start.
func (s *GamificationService) LoadTable(ctx context.Context) greencoins.Table {
	table, err := s.repo.LoadTable(ctx)
	if err != nil {
		zap.L().Warn("falling back to built-in level table", zap.Error(err))

		return greencoins.DefaultTable()
	}

	return table
}

func (s *GamificationService) ListLevels(ctx context.Context) ([]greencoins.Level, error) {
	levels, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return levels, nil
}

// CreateLevel validates the candidate against the existing rows by
// building the would-be table, so an insert can never leave the
// progression unordered or without a zero-threshold base.
func (s *GamificationService) CreateLevel(ctx context.Context, level greencoins.Level) (greencoins.Level, error) {
	if err := s.validateAgainstExisting(ctx, level, false); err != nil {
		return greencoins.Level{}, err
	}

	created, err := s.repo.Create(ctx, level)
	if err != nil {
		return greencoins.Level{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *GamificationService) UpdateLevel(ctx context.Context, level greencoins.Level) (greencoins.Level, error) {
	if err := s.validateAgainstExisting(ctx, level, true); err != nil {
		return greencoins.Level{}, err
	}

	updated, err := s.repo.Update(ctx, level)
	if err != nil {
		return greencoins.Level{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *GamificationService) DeleteLevel(ctx context.Context, levelNumber int) error {
	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	remaining := make([]greencoins.Level, 0, len(existing))
	for _, l := range existing {
		if l.Level != levelNumber {
			remaining = append(remaining, l)
		}
	}
	if len(remaining) == len(existing) {
		return ErrLevelNotFound
	}

	if _, err = greencoins.NewTable(remaining); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}

	if err = s.repo.Delete(ctx, levelNumber); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *GamificationService) validateAgainstExisting(ctx context.Context, level greencoins.Level, replace bool) error {
	if level.Level <= 0 || level.Title == "" || level.MinPoints < 0 {
		return ErrInvalidLevel
	}

	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	candidate := make([]greencoins.Level, 0, len(existing)+1)
	replaced := false
	for _, l := range existing {
		if l.Level == level.Level {
			if !replace {
				return fmt.Errorf("%w: level %d already exists", ErrInvalidLevel, level.Level)
			}
			candidate = append(candidate, level)
			replaced = true
			continue
		}
		candidate = append(candidate, l)
	}
	if !replaced {
		if replace {
			return ErrLevelNotFound
		}
		candidate = append(candidate, level)
	}

	// Rows come back ordered by threshold; a new entry belongs at its
	// sorted position before validation.
	for i := 1; i < len(candidate); i++ {
		for j := i; j > 0 && candidate[j].MinPoints < candidate[j-1].MinPoints; j-- {
			candidate[j], candidate[j-1] = candidate[j-1], candidate[j]
		}
	}

	if _, err = greencoins.NewTable(candidate); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}

	return nil
}
