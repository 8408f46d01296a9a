package game

// Snapshot is a read-only copy of everything the presentation layer needs
// to draw a frame. It shares no memory with the Game.
type Snapshot struct {
	State     State
	Snake     []Position // Head first; empty before the first run
	Direction Direction  // Heading of the last move; reversals are checked against it
	Queued    Direction  // Heading the next move will take
	Food      Food
	PowerUp   *PowerUp // nil when no token is on the board
	Effect    *Effect  // nil when no effect is active

	Score        int
	HighScore    int
	NewHighScore bool // Score beat the previous high score this run
	Speed        float64

	Achievements []int // Unlocked thresholds, ascending
	JustUnlocked []int // Thresholds unlocked by the latest tick

	Skin          int
	ExitRequested bool

	GridWidth  int
	GridHeight int
}

// Snapshot copies the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		State:         g.state,
		Snake:         append([]Position(nil), g.snake...),
		Direction:     g.heading,
		Queued:        g.pending,
		Food:          g.food,
		Score:         g.score,
		HighScore:     g.highScore,
		NewHighScore:  g.newHighScore,
		Speed:         g.Speed(),
		Achievements:  g.Achievements(),
		JustUnlocked:  append([]int(nil), g.justUnlocked...),
		Skin:          g.skin,
		ExitRequested: g.exitRequested,
		GridWidth:     g.cfg.GridWidth,
		GridHeight:    g.cfg.GridHeight,
	}
	if g.powerUp != nil {
		p := *g.powerUp
		snap.PowerUp = &p
	}
	if g.effect != nil {
		e := *g.effect
		snap.Effect = &e
	}
	return snap
}

// Head returns the head cell and false if the snake is empty.
func (s Snapshot) Head() (Position, bool) {
	if len(s.Snake) == 0 {
		return Position{}, false
	}
	return s.Snake[0], true
}
