package greencoins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	tests := []struct {
		name    string
		levels  []Level
		wantErr error
	}{
		{
			name:    "empty table",
			levels:  nil,
			wantErr: ErrEmptyTable,
		},
		{
			name:    "first threshold not zero",
			levels:  []Level{{Level: 1, Title: "A", MinPoints: 100}},
			wantErr: ErrBaseLevelThreshold,
		},
		{
			name: "non-increasing thresholds",
			levels: []Level{
				{Level: 1, Title: "A", MinPoints: 0},
				{Level: 2, Title: "B", MinPoints: 500},
				{Level: 3, Title: "C", MinPoints: 500},
			},
			wantErr: ErrUnorderedTable,
		},
		{
			name: "non-increasing levels",
			levels: []Level{
				{Level: 1, Title: "A", MinPoints: 0},
				{Level: 1, Title: "B", MinPoints: 500},
			},
			wantErr: ErrUnorderedTable,
		},
		{
			name: "valid table",
			levels: []Level{
				{Level: 1, Title: "A", MinPoints: 0},
				{Level: 2, Title: "B", MinPoints: 500},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.levels)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTable_LevelFor(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		points    int
		wantLevel int
		wantTitle string
	}{
		{0, 1, "Explorador Ecológico"},
		{499, 1, "Explorador Ecológico"},
		{500, 2, "Guardián Verde"},
		{1499, 2, "Guardián Verde"},
		{1500, 3, "Activista Sostenible"},
		{29999, 9, "Campeón de la Sostenibilidad"},
		{30000, 10, "Leyenda de GEA"},
		{1000000, 10, "Leyenda de GEA"},
		{-5, 1, "Explorador Ecológico"},
	}

	for _, tt := range tests {
		got := table.LevelFor(tt.points)
		assert.Equal(t, tt.wantLevel, got.Level, "points=%d", tt.points)
		assert.Equal(t, tt.wantTitle, got.Title, "points=%d", tt.points)
	}
}

func TestTable_LevelFor_Monotonic(t *testing.T) {
	table := DefaultTable()

	previous := 0
	for points := 0; points <= 35000; points += 250 {
		level := table.LevelFor(points).Level
		assert.GreaterOrEqual(t, level, previous, "level regressed at %d points", points)
		previous = level
	}
}

func TestTable_NextLevel(t *testing.T) {
	table := DefaultTable()

	next, ok := table.NextLevel(table.LevelFor(0))
	require.True(t, ok)
	assert.Equal(t, 2, next.Level)
	assert.Equal(t, 500, next.MinPoints)

	_, ok = table.NextLevel(table.LevelFor(30000))
	assert.False(t, ok)
}

func TestTable_SnapshotFor(t *testing.T) {
	table := DefaultTable()

	snap := table.SnapshotFor(602)
	assert.Equal(t, 2, snap.Level)
	assert.Equal(t, "Guardián Verde", snap.Title)
	assert.Equal(t, 602, snap.Points)
	assert.Equal(t, 1500, snap.NextLevelPoints)

	// At the maximum level the next threshold falls back to the current one.
	top := table.SnapshotFor(42000)
	assert.Equal(t, 10, top.Level)
	assert.Equal(t, 30000, top.NextLevelPoints)
}

func TestTable_InjectedAlternateTable(t *testing.T) {
	table, err := NewTable([]Level{
		{Level: 1, Title: "Semilla", MinPoints: 0},
		{Level: 2, Title: "Brote", MinPoints: 10},
		{Level: 3, Title: "Árbol", MinPoints: 20},
	})
	require.NoError(t, err)

	assert.Equal(t, "Brote", table.LevelFor(15).Title)
	assert.Equal(t, 20, table.SnapshotFor(15).NextLevelPoints)
}
