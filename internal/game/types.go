package game

import (
	"fmt"
	"time"
)

// Position is a cell on the grid. (0,0) is the top-left corner.
type Position struct {
	X, Y int
}

// Add returns the neighbouring cell one step in direction d.
func (p Position) Add(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is the heading of the snake.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Delta returns the unit vector for the direction. Y grows downwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the 180° reverse of d.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// State is the phase of the game state machine.
type State int

const (
	StateMenu     State = iota // Title screen, skin selection
	StatePlaying               // Snake is moving
	StatePaused                // Run frozen, can resume
	StateGameOver              // Snake crashed
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// PowerUpKind identifies the effect a power-up token grants.
type PowerUpKind int

const (
	PowerUpSlowDown    PowerUpKind = iota // Fixed, slower move interval
	PowerUpDoubleScore                    // Food is worth 2 points

	powerUpKindCount // must stay last
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpSlowDown:
		return "slowdown"
	case PowerUpDoubleScore:
		return "doublescore"
	default:
		return "unknown"
	}
}

// Food is the item the snake eats to grow and score.
type Food struct {
	Pos    Position
	Symbol string // Cosmetic only
}

// PowerUp is a collectible token lying on the board.
type PowerUp struct {
	Pos       Position
	Kind      PowerUpKind
	SpawnedAt time.Time
}

// Effect is a power-up effect currently applied to the snake.
type Effect struct {
	Kind      PowerUpKind
	ExpiresAt time.Time
}

// Remaining returns how long the effect still lasts at now.
func (e Effect) Remaining(now time.Time) time.Duration {
	if d := e.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
