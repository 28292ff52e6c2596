package greencoins

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTable         = errors.New("level table must contain at least one level")
	ErrBaseLevelThreshold = errors.New("the first level must start at 0 points")
	ErrUnorderedTable     = errors.New("levels and thresholds must be strictly increasing")
)

// Level is one entry of the gamification progression. Icon and Color are
// presentation hints carried through to clients, the lookup ignores them.
type Level struct {
	Level     int    `json:"level"`
	Title     string `json:"title"`
	MinPoints int    `json:"minPoints"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
}

// Snapshot is the denormalized gamification state cached on a user.
type Snapshot struct {
	Level           int    `json:"level"`
	Title           string `json:"title"`
	Points          int    `json:"points"`
	NextLevelPoints int    `json:"nextLevelPoints"`
}

// Table is an immutable, validated level progression. Construct one with
// NewTable and pass it by value; there is no package-level table state.
type Table struct {
	levels []Level
}

// NewTable validates and copies the given levels, ordered ascending.
// Every non-negative coin total maps to exactly one entry because the
// first threshold is 0 and thresholds strictly increase.
func NewTable(levels []Level) (Table, error) {
	if len(levels) == 0 {
		return Table{}, ErrEmptyTable
	}
	if levels[0].MinPoints != 0 {
		return Table{}, ErrBaseLevelThreshold
	}

	for i := 1; i < len(levels); i++ {
		if levels[i].Level <= levels[i-1].Level || levels[i].MinPoints <= levels[i-1].MinPoints {
			return Table{}, fmt.Errorf("level %d: %w", levels[i].Level, ErrUnorderedTable)
		}
	}

	owned := make([]Level, len(levels))
	copy(owned, levels)

	return Table{levels: owned}, nil
}

// DefaultTable returns the ten built-in GEA levels. It is used to seed the
// database and as a fallback when no levels have been configured.
func DefaultTable() Table {
	table, err := NewTable([]Level{
		{Level: 1, Title: "Explorador Ecológico", MinPoints: 0, Icon: "Sprout", Color: "text-green-500"},
		{Level: 2, Title: "Guardián Verde", MinPoints: 500, Icon: "Shield", Color: "text-blue-500"},
		{Level: 3, Title: "Activista Sostenible", MinPoints: 1500, Icon: "HelpingHand", Color: "text-rose-500"},
		{Level: 4, Title: "Héroe del Reciclaje", MinPoints: 3000, Icon: "Recycle", Color: "text-teal-500"},
		{Level: 5, Title: "Eco-Guerrero", MinPoints: 5000, Icon: "Zap", Color: "text-amber-500"},
		{Level: 6, Title: "Maestro Compostador", MinPoints: 7500, Icon: "Leaf", Color: "text-lime-600"},
		{Level: 7, Title: "Embajador del Planeta", MinPoints: 10000, Icon: "Globe", Color: "text-indigo-500"},
		{Level: 8, Title: "Visionario Verde", MinPoints: 15000, Icon: "Sun", Color: "text-orange-500"},
		{Level: 9, Title: "Campeón de la Sostenibilidad", MinPoints: 20000, Icon: "Gem", Color: "text-purple-500"},
		{Level: 10, Title: "Leyenda de GEA", MinPoints: 30000, Icon: "Crown", Color: "text-red-600"},
	})
	if err != nil {
		panic(fmt.Sprintf("greencoins: invalid built-in table: %v", err))
	}

	return table
}

// Levels returns a copy of the ordered entries.
func (t Table) Levels() []Level {
	levels := make([]Level, len(t.levels))
	copy(levels, t.levels)
	return levels
}

// LevelFor returns the highest level whose threshold is at or below points.
// Negative totals clamp to the first level.
func (t Table) LevelFor(points int) Level {
	current := t.levels[0]
	for _, level := range t.levels[1:] {
		if points < level.MinPoints {
			break
		}
		current = level
	}

	return current
}

// NextLevel returns the entry right above current, or false when current
// is already the maximum defined level.
func (t Table) NextLevel(current Level) (Level, bool) {
	for _, level := range t.levels {
		if level.Level == current.Level+1 {
			return level, true
		}
	}

	return Level{}, false
}

// SnapshotFor builds the cached gamification state for a coin total.
// At the top level there is no further progress to show, so the "next"
// threshold falls back to the current level's own threshold.
func (t Table) SnapshotFor(points int) Snapshot {
	current := t.LevelFor(points)

	nextPoints := current.MinPoints
	if next, ok := t.NextLevel(current); ok {
		nextPoints = next.MinPoints
	}

	return Snapshot{
		Level:           current.Level,
		Title:           current.Title,
		Points:          points,
		NextLevelPoints: nextPoints,
	}
}
