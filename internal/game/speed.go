package game

import "time"

// SpeedFor returns the moves per second for a score:
// BaseSpeed + floor(score/SpeedStep) * SpeedIncrement.
func SpeedFor(cfg Config, score int) float64 {
	step := cfg.SpeedStep
	if step <= 0 {
		step = 10
	}
	if score < 0 {
		score = 0
	}
	base := cfg.BaseSpeed
	if base <= 0 {
		base = 8
	}
	return base + float64(score/step)*max(cfg.SpeedIncrement, 0)
}

// Speed returns the current score-derived speed in moves per second.
func (g *Game) Speed() float64 {
	return SpeedFor(g.cfg, g.score)
}

// MoveInterval returns the time between moves. An active SlowDown effect
// replaces the score-derived interval with a fixed one.
func (g *Game) MoveInterval() time.Duration {
	if g.effect != nil && g.effect.Kind == PowerUpSlowDown {
		return g.cfg.SlowDownInterval
	}
	return time.Duration(float64(time.Second) / g.Speed())
}
