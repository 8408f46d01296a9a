// Package game implements the snake simulation: the state machine, tick-based
// movement, collisions, spawning, scoring, speed scaling and achievements.
//
// A Game is not safe for concurrent use. The owner calls commands and Tick from a
// single goroutine and reads the result through Snapshot.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Store persists the high score and unlocked achievements across runs.
// Loads return zero values when nothing usable is stored.
type Store interface {
	LoadHighScore() int
	SaveHighScore(score int) error
	LoadAchievements() []int
	SaveAchievements(thresholds []int) error
}

type nopStore struct{}

func (nopStore) LoadHighScore() int { return 0 }

func (nopStore) SaveHighScore(int) error { return nil }

func (nopStore) LoadAchievements() []int { return nil }

func (nopStore) SaveAchievements([]int) error { return nil }

// Option configures optional Game collaborators.
type Option func(*Game)

// WithLogger sets the logger used for persistence failures and game events.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRand sets the random source used for spawning. Overrides Config.Seed.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		g.rng = r
	}
}

// Game is the simulation core.
type Game struct {
	cfg     Config
	store   Store
	logger  *log.Logger
	rng     *rand.Rand
	spawner *Spawner

	state   State
	snake   []Position // Head first
	heading Direction  // Direction of the last move
	pending Direction  // Direction applied on the next move
	food    Food
	powerUp *PowerUp
	effect  *Effect

	score        int
	highScore    int
	newHighScore bool
	achievements map[int]struct{}
	justUnlocked []int

	skin          int
	exitRequested bool

	lastMove time.Time // Zero until the first tick of a run
	lastTick time.Time

	pausedTick   time.Time // lastTick when the run was paused
	freezeOnTick bool      // Resumed without a paused tick; freeze on the next one
}

// New creates a game in the menu state. High score and achievements are loaded
// from store; a nil store keeps them in memory only.
func New(cfg Config, store Store, opts ...Option) *Game {
	cfg = cfg.normalize()
	if store == nil {
		store = nopStore{}
	}

	g := &Game{
		cfg:          cfg,
		store:        store,
		logger:       log.New(io.Discard),
		state:        StateMenu,
		heading:      DirRight,
		pending:      DirRight,
		achievements: make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(seed))
	}
	g.spawner = NewSpawner(cfg.GridWidth, cfg.GridHeight, g.rng)

	g.syncRecords()
	return g
}

// Config returns the configuration the game was built with.
func (g *Game) Config() Config {
	return g.cfg
}

// State returns the current state machine phase.
func (g *Game) State() State {
	return g.state
}

// StartGame begins a fresh run from the menu.
func (g *Game) StartGame() bool {
	if g.state != StateMenu {
		return false
	}
	g.reset()
	return true
}

// RestartGame begins a fresh run after a game over.
func (g *Game) RestartGame() bool {
	if g.state != StateGameOver {
		return false
	}
	g.reset()
	return true
}

// Pause freezes a running game.
func (g *Game) Pause() bool {
	if g.state != StatePlaying {
		return false
	}
	g.state = StatePaused
	g.pausedTick = g.lastTick
	return true
}

// Resume continues a paused game. Time spent paused is not counted.
func (g *Game) Resume() bool {
	if g.state != StatePaused {
		return false
	}
	g.state = StatePlaying
	if g.lastTick.Equal(g.pausedTick) {
		g.freezeOnTick = true
	}
	return true
}

// ReturnToMenu abandons the current run.
func (g *Game) ReturnToMenu() bool {
	if g.state != StateGameOver && g.state != StatePaused {
		return false
	}
	g.state = StateMenu
	return true
}

// RequestExit acknowledges an exit request. The caller performs the shutdown
// once Snapshot().ExitRequested is set. Ignored while playing.
func (g *Game) RequestExit() bool {
	if g.state == StatePlaying {
		return false
	}
	g.exitRequested = true
	return true
}

// SelectSkin chooses the cosmetic skin in the menu. Locked skins are rejected.
func (g *Game) SelectSkin(index int) bool {
	if g.state != StateMenu || index < 0 || index >= len(g.cfg.Skins) {
		return false
	}
	if !g.cfg.Skins[index].Unlocked(g.achievements) {
		return false
	}
	g.skin = index
	return true
}

// ChangeDirection queues a new heading for the next move. Reversing onto the
// neck is rejected; the latest accepted request wins.
func (g *Game) ChangeDirection(d Direction) bool {
	if g.state != StatePlaying || d < DirUp || d > DirRight {
		return false
	}
	if d == g.heading.Opposite() {
		return false
	}
	g.pending = d
	return true
}

// Tick advances the simulation to now. The snake moves at most once per call,
// and only when a full move interval has elapsed since the previous move.
func (g *Game) Tick(now time.Time) {
	g.justUnlocked = nil

	switch g.state {
	case StatePaused:
		g.freeze(now)
		return
	case StatePlaying:
	default:
		return
	}

	if g.freezeOnTick {
		g.freezeOnTick = false
		g.freeze(now)
	}
	if g.lastMove.IsZero() {
		g.lastMove = now
		g.lastTick = now
		return
	}
	g.lastTick = now

	g.expire(now)
	if now.Sub(g.lastMove) >= g.MoveInterval() {
		g.Advance(now)
		g.lastMove = now
	}
}

// Advance moves the snake one cell and resolves everything that follows.
func (g *Game) Advance(now time.Time) {
	if g.state != StatePlaying || len(g.snake) == 0 {
		return
	}

	g.heading = g.pending
	head := g.snake[0].Add(g.heading)

	// The whole body counts, including the tail cell about to be vacated.
	if !g.inBounds(head) || g.onSnake(head) {
		g.state = StateGameOver
		g.logger.Debug("snake crashed", "head", head, "score", g.score)
		return
	}

	g.snake = append(g.snake, Position{})
	copy(g.snake[1:], g.snake)
	g.snake[0] = head

	ate := head == g.food.Pos
	if ate {
		g.eat()
		if !g.respawnFood() {
			g.state = StateGameOver
			g.logger.Info("board full", "score", g.score)
			return
		}
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}

	if g.powerUp != nil && head == g.powerUp.Pos {
		g.effect = &Effect{
			Kind:      g.powerUp.Kind,
			ExpiresAt: now.Add(g.cfg.PowerUpDuration),
		}
		g.logger.Debug("power-up collected", "kind", g.powerUp.Kind)
		g.powerUp = nil
	}

	if ate {
		g.maybeSpawnPowerUp(now)
	}
}

// reset initializes a new run and enters the playing state.
func (g *Game) reset() {
	g.syncRecords()

	midY := max(2, g.cfg.GridHeight/2)
	headX := min(5, g.cfg.GridWidth-1)
	g.snake = []Position{
		{X: headX, Y: midY},
		{X: headX - 1, Y: midY},
		{X: headX - 2, Y: midY},
	}
	g.heading = DirRight
	g.pending = DirRight

	g.score = 0
	g.newHighScore = false
	g.powerUp = nil
	g.effect = nil
	g.justUnlocked = nil
	g.exitRequested = false
	g.lastMove = time.Time{}
	g.lastTick = time.Time{}
	g.pausedTick = time.Time{}
	g.freezeOnTick = false

	if !g.respawnFood() {
		g.food = Food{Pos: Position{X: -1, Y: -1}}
	}
	g.state = StatePlaying
}

// syncRecords merges the persisted high score and achievements into memory.
// Other sessions sharing the store may have raised them.
func (g *Game) syncRecords() {
	if hs := g.store.LoadHighScore(); hs > g.highScore {
		g.highScore = hs
	}
	for _, t := range g.store.LoadAchievements() {
		g.achievements[t] = struct{}{}
	}
}

// eat applies scoring for the food under the head.
func (g *Game) eat() {
	inc := 1
	if g.effect != nil && g.effect.Kind == PowerUpDoubleScore {
		inc = 2
	}
	g.score += inc

	if g.score > g.highScore {
		g.highScore = g.score
		g.newHighScore = true
		if err := g.store.SaveHighScore(g.highScore); err != nil {
			g.logger.Warn("failed to save high score", "score", g.highScore, "err", err)
		}
		g.CheckAchievements(g.highScore)
	}
}

// respawnFood places new food away from the snake and any token.
func (g *Game) respawnFood() bool {
	pos, ok := g.spawner.SpawnFood(g.occupied(true))
	if !ok {
		return false
	}
	g.food = Food{Pos: pos, Symbol: g.spawner.Pick(g.cfg.FoodSymbols)}
	return true
}

// maybeSpawnPowerUp drops a token when the score reaches a multiple of the interval.
func (g *Game) maybeSpawnPowerUp(now time.Time) {
	if !g.cfg.PowerUpsEnabled || g.powerUp != nil {
		return
	}
	if g.score <= 0 || g.score%g.cfg.PowerUpInterval != 0 {
		return
	}
	pos, kind, ok := g.spawner.SpawnPowerUp(g.occupied(false), g.food.Pos)
	if !ok {
		return
	}
	g.powerUp = &PowerUp{Pos: pos, Kind: kind, SpawnedAt: now}
}

// expire drops effects and tokens whose time is up.
func (g *Game) expire(now time.Time) {
	if g.effect != nil && !now.Before(g.effect.ExpiresAt) {
		g.effect = nil
	}
	if g.powerUp != nil && g.cfg.PowerUpLifetime > 0 && now.Sub(g.powerUp.SpawnedAt) >= g.cfg.PowerUpLifetime {
		g.powerUp = nil
	}
}

// freeze shifts every run timestamp forward by the time elapsed while paused.
func (g *Game) freeze(now time.Time) {
	if g.lastTick.IsZero() {
		return
	}
	gap := now.Sub(g.lastTick)
	g.lastTick = now
	if gap <= 0 {
		return
	}
	if !g.lastMove.IsZero() {
		g.lastMove = g.lastMove.Add(gap)
	}
	if g.effect != nil {
		g.effect.ExpiresAt = g.effect.ExpiresAt.Add(gap)
	}
	if g.powerUp != nil {
		g.powerUp.SpawnedAt = g.powerUp.SpawnedAt.Add(gap)
	}
}

func (g *Game) inBounds(p Position) bool {
	return p.X >= 0 && p.X < g.cfg.GridWidth && p.Y >= 0 && p.Y < g.cfg.GridHeight
}

func (g *Game) onSnake(p Position) bool {
	for _, s := range g.snake {
		if s == p {
			return true
		}
	}
	return false
}

// occupied returns the snake cells, plus the token cell if withToken is set.
func (g *Game) occupied(withToken bool) map[Position]struct{} {
	set := make(map[Position]struct{}, len(g.snake)+1)
	for _, p := range g.snake {
		set[p] = struct{}{}
	}
	if withToken && g.powerUp != nil {
		set[g.powerUp.Pos] = struct{}{}
	}
	return set
}
