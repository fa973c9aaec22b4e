// Package config provides YAML-based game configuration loading, environment
// overrides and difficulty management for the adventure game.
package config

import "time"

// AdventureConfig contains all configuration for the adventure game.
type AdventureConfig struct {
	Gameplay   AdventureGameplay `yaml:"gameplay"`
	Enemies    AdventureEnemies  `yaml:"enemies"`
	Display    AdventureDisplay  `yaml:"display"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// AdventureGameplay defines session rules.
type AdventureGameplay struct {
	Lives        int   `yaml:"lives" env:"ADVENTURE_LIVES"`
	CoinAttempts int   `yaml:"coin_attempts" env:"ADVENTURE_COIN_ATTEMPTS"`
	CoinSeed     int64 `yaml:"coin_seed" env:"ADVENTURE_COIN_SEED"`
	RevealRadius int   `yaml:"reveal_radius" env:"ADVENTURE_REVEAL_RADIUS"`
}

// AdventureEnemies defines patrol timing.
type AdventureEnemies struct {
	PatrolIntervalMS int `yaml:"patrol_interval_ms" env:"ADVENTURE_PATROL_INTERVAL_MS"`
	MinIntervalMS    int `yaml:"min_interval_ms" env:"ADVENTURE_MIN_INTERVAL_MS"`
}

// PatrolInterval returns the base patrol period.
func (e AdventureEnemies) PatrolInterval() time.Duration {
	return time.Duration(e.PatrolIntervalMS) * time.Millisecond
}

// MinInterval returns the fastest allowed patrol period.
func (e AdventureEnemies) MinInterval() time.Duration {
	return time.Duration(e.MinIntervalMS) * time.Millisecond
}

// AdventureDisplay defines presentation parameters.
type AdventureDisplay struct {
	CellSize  int `yaml:"cell_size" env:"ADVENTURE_CELL_SIZE"`
	FrameRate int `yaml:"frame_rate" env:"ADVENTURE_FRAME_RATE"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" env:"ADVENTURE_DIFFICULTY_ENABLED"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "coins", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Coins or patrol ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Speed added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
