package game

import "math/rand"

// Spawner places food and power-up tokens on free grid cells.
type Spawner struct {
	width  int
	height int
	rng    *rand.Rand
}

// NewSpawner creates a spawner for a width x height grid.
func NewSpawner(width, height int, rng *rand.Rand) *Spawner {
	return &Spawner{
		width:  width,
		height: height,
		rng:    rng,
	}
}

// SpawnFood samples uniformly random cells until one is not in occupied.
// Returns false if occupied covers the whole grid.
func (s *Spawner) SpawnFood(occupied map[Position]struct{}) (Position, bool) {
	if s.full(occupied) {
		return Position{}, false
	}
	for {
		p := Position{X: s.rng.Intn(s.width), Y: s.rng.Intn(s.height)}
		if _, taken := occupied[p]; !taken {
			return p, true
		}
	}
}

// SpawnPowerUp behaves like SpawnFood but also avoids the food cell, and picks
// the token kind uniformly.
func (s *Spawner) SpawnPowerUp(occupied map[Position]struct{}, food Position) (Position, PowerUpKind, bool) {
	blocked := make(map[Position]struct{}, len(occupied)+1)
	for p := range occupied {
		blocked[p] = struct{}{}
	}
	blocked[food] = struct{}{}

	p, ok := s.SpawnFood(blocked)
	if !ok {
		return Position{}, 0, false
	}
	return p, PowerUpKind(s.rng.Intn(int(powerUpKindCount))), true
}

// Pick returns a uniformly chosen element of items.
func (s *Spawner) Pick(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[s.rng.Intn(len(items))]
}

// full reports whether every in-bounds cell is occupied.
func (s *Spawner) full(occupied map[Position]struct{}) bool {
	free := s.width * s.height
	for p := range occupied {
		if p.X >= 0 && p.X < s.width && p.Y >= 0 && p.Y < s.height {
			free--
		}
	}
	return free <= 0
}
