package config

import "github.com/tomz197/snake/internal/game"

// GameConfig returns the default gameplay configuration with environment
// overrides applied: SNAKE_POWERUPS toggles power-ups, SNAKE_SEED fixes the
// random seed. The grid size is left for the client to pick.
func GameConfig() game.Config {
	cfg := game.DefaultConfig(0, 0)
	cfg.PowerUpsEnabled = GetEnvBool("SNAKE_POWERUPS", cfg.PowerUpsEnabled)
	cfg.Seed = GetEnvInt("SNAKE_SEED", 0)
	return cfg
}

// DataDir returns the directory holding the high score and achievement files.
func DataDir() string {
	return GetEnv("SNAKE_DATA_DIR", ".")
}
