package service

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gea-verde/gea-api/internal/pkg/greencoins"
	"github.com/gea-verde/gea-api/internal/repository"
)

type fakeGamificationRepo struct {
	levels []greencoins.Level
}

func (f *fakeGamificationRepo) sorted() []greencoins.Level {
	levels := make([]greencoins.Level, len(f.levels))
	copy(levels, f.levels)
	sort.Slice(levels, func(i, j int) bool { return levels[i].MinPoints < levels[j].MinPoints })
	return levels
}

func (f *fakeGamificationRepo) LoadTable(_ context.Context) (greencoins.Table, error) {
	return greencoins.NewTable(f.sorted())
}

func (f *fakeGamificationRepo) FindAll(_ context.Context) ([]greencoins.Level, error) {
	return f.sorted(), nil
}

func (f *fakeGamificationRepo) Create(_ context.Context, level greencoins.Level) (greencoins.Level, error) {
	f.levels = append(f.levels, level)
	return level, nil
}

func (f *fakeGamificationRepo) Update(_ context.Context, level greencoins.Level) (greencoins.Level, error) {
	for i, l := range f.levels {
		if l.Level == level.Level {
			f.levels[i] = level
			return level, nil
		}
	}
	return greencoins.Level{}, repository.ErrLevelNotFound
}

func (f *fakeGamificationRepo) Delete(_ context.Context, levelNumber int) error {
	for i, l := range f.levels {
		if l.Level == levelNumber {
			f.levels = append(f.levels[:i], f.levels[i+1:]...)
			return nil
		}
	}
	return repository.ErrLevelNotFound
}

func (f *fakeGamificationRepo) SeedDefaults(_ context.Context, table greencoins.Table) error {
	if len(f.levels) == 0 {
		f.levels = table.Levels()
	}
	return nil
}

func TestGamificationService_LoadTableFallsBack(t *testing.T) {
	svc := NewGamificationService(&fakeGamificationRepo{})

	table := svc.LoadTable(context.Background())
	assert.Equal(t, greencoins.DefaultTable().Levels(), table.Levels())
}

func TestGamificationService_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := &fakeGamificationRepo{}
	svc := NewGamificationService(repo)

	require.NoError(t, svc.Seed(ctx))
	require.NoError(t, svc.Seed(ctx))

	levels, err := svc.ListLevels(ctx)
	require.NoError(t, err)
	assert.Len(t, levels, 10)
}

func TestGamificationService_CreateLevel(t *testing.T) {
	ctx := context.Background()
	repo := &fakeGamificationRepo{levels: []greencoins.Level{
		{Level: 1, Title: "Base", MinPoints: 0},
		{Level: 2, Title: "Media", MinPoints: 100},
	}}
	svc := NewGamificationService(repo)

	created, err := svc.CreateLevel(ctx, greencoins.Level{Level: 3, Title: "Alta", MinPoints: 300})
	require.NoError(t, err)
	assert.Equal(t, 3, created.Level)
}

func TestGamificationService_CreateLevelRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := &fakeGamificationRepo{levels: []greencoins.Level{
		{Level: 1, Title: "Base", MinPoints: 0},
		{Level: 2, Title: "Media", MinPoints: 100},
	}}
	svc := NewGamificationService(repo)

	tests := []struct {
		name  string
		level greencoins.Level
	}{
		{"missing title", greencoins.Level{Level: 3, MinPoints: 300}},
		{"duplicate level number", greencoins.Level{Level: 2, Title: "Otra", MinPoints: 300}},
		{"duplicate threshold", greencoins.Level{Level: 3, Title: "Alta", MinPoints: 100}},
		{"negative threshold", greencoins.Level{Level: 3, Title: "Alta", MinPoints: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateLevel(ctx, tt.level)
			assert.ErrorIs(t, err, ErrInvalidLevel)
		})
	}
}

func TestGamificationService_DeleteLevel(t *testing.T) {
	ctx := context.Background()
	repo := &fakeGamificationRepo{levels: []greencoins.Level{
		{Level: 1, Title: "Base", MinPoints: 0},
		{Level: 2, Title: "Media", MinPoints: 100},
		{Level: 3, Title: "Alta", MinPoints: 300},
	}}
	svc := NewGamificationService(repo)

	require.NoError(t, svc.DeleteLevel(ctx, 3))

	levels, err := svc.ListLevels(ctx)
	require.NoError(t, err)
	assert.Len(t, levels, 2)

	// Removing the base level would leave no zero threshold.
	err = svc.DeleteLevel(ctx, 1)
	assert.ErrorIs(t, err, ErrInvalidLevel)

	err = svc.DeleteLevel(ctx, 42)
	assert.ErrorIs(t, err, ErrLevelNotFound)
}
