package game

import (
	"sort"
	"time"
)

// Grid limits. Smaller grids cannot hold the three-cell starting snake.
const (
	MinGridWidth  = 4
	MinGridHeight = 4
)

// Skin is a cosmetic snake color scheme.
type Skin struct {
	Name     string
	Head     string // lipgloss color for the head cell
	Body     string // lipgloss color for body cells
	Rainbow  bool   // Body cycles through colors instead of using Body
	UnlockAt int    // Achievement threshold required to select; 0 = always available
}

// Unlocked reports whether the skin can be selected with the given achievements.
func (s Skin) Unlocked(achievements map[int]struct{}) bool {
	if s.UnlockAt <= 0 {
		return true
	}
	_, ok := achievements[s.UnlockAt]
	return ok
}

// Config holds every gameplay tunable. It is copied into the Game at construction
// and never mutated afterwards.
type Config struct {
	GridWidth  int
	GridHeight int

	BaseSpeed      float64 // Moves per second at score 0
	SpeedIncrement float64 // Added every SpeedStep points
	SpeedStep      int

	Thresholds  []int // Achievement thresholds, ascending
	Skins       []Skin
	FoodSymbols []string

	PowerUpsEnabled  bool
	PowerUpInterval  int           // Token spawns when score hits a positive multiple of this
	PowerUpDuration  time.Duration // How long a collected effect lasts
	PowerUpLifetime  time.Duration // Uncollected token disappears after this; 0 = never
	SlowDownInterval time.Duration // Move interval while SlowDown is active

	Seed int64 // Random seed; 0 picks one from the clock
}

// DefaultConfig returns the standard game on a gridWidth x gridHeight board.
func DefaultConfig(gridWidth, gridHeight int) Config {
	return Config{
		GridWidth:      gridWidth,
		GridHeight:     gridHeight,
		BaseSpeed:      8,
		SpeedIncrement: 2,
		SpeedStep:      10,
		Thresholds:     []int{10, 20, 30, 50, 100, 250, 500},
		Skins: []Skin{
			{Name: "Classic", Head: "#00C800", Body: "#009600"},
			{Name: "Blue", Head: "#0078FF", Body: "#0050B4"},
			{Name: "Red", Head: "#DC2828", Body: "#B40000"},
			{Name: "Yellow", Head: "#FFDC00", Body: "#C8B400"},
			{Name: "Legendary", Head: "#FFFFFF", Body: "#FFFFFF", Rainbow: true, UnlockAt: 100},
		},
		FoodSymbols: []string{
			"🍇", "🍈", "🍉", "🍊", "🍋", "🍌", "🍍", "🥭",
			"🍐", "🍑", "🍒", "🍓", "🫐", "🥝", "🍎", "🍏",
		},
		PowerUpsEnabled:  true,
		PowerUpInterval:  5,
		PowerUpDuration:  5 * time.Second,
		PowerUpLifetime:  10 * time.Second,
		SlowDownInterval: 200 * time.Millisecond,
	}
}

// normalize fills zero values so a partially specified Config still runs.
func (c Config) normalize() Config {
	if c.GridWidth < MinGridWidth {
		c.GridWidth = MinGridWidth
	}
	if c.GridHeight < MinGridHeight {
		c.GridHeight = MinGridHeight
	}
	if c.BaseSpeed <= 0 {
		c.BaseSpeed = 8
	}
	if c.SpeedIncrement < 0 {
		c.SpeedIncrement = 0
	}
	if c.SpeedStep <= 0 {
		c.SpeedStep = 10
	}
	if len(c.Skins) == 0 {
		c.Skins = []Skin{{Name: "Classic", Head: "#00C800", Body: "#009600"}}
	}
	if len(c.FoodSymbols) == 0 {
		c.FoodSymbols = []string{"*"}
	}
	if c.PowerUpInterval <= 0 {
		c.PowerUpsEnabled = false
	}
	if c.SlowDownInterval <= 0 {
		c.SlowDownInterval = 200 * time.Millisecond
	}

	// Own the slices so the caller cannot mutate them later.
	c.Thresholds = append([]int(nil), c.Thresholds...)
	sort.Ints(c.Thresholds)
	c.Skins = append([]Skin(nil), c.Skins...)
	c.FoodSymbols = append([]string(nil), c.FoodSymbols...)
	return c
}
