package config

import (
	"math"
	"time"
)

// DifficultyManager scales enemy speed with coins collected or elapsed ticks.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(coins int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "coins":
		progress = float64(coins) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the speed multiplier for the current level.
func (d *DifficultyManager) Speed(coins int, ticks int) float64 {
	return 1.0 + d.Level(coins, ticks)*d.cfg.Scaling.SpeedMultiplier
}

// PatrolInterval returns the patrol period for the current level. With
// progression disabled it is always base. The result never drops below floor.
func (d *DifficultyManager) PatrolInterval(base, floor time.Duration, coins int, ticks int) time.Duration {
	if !d.IsEnabled() {
		return base
	}
	interval := time.Duration(float64(base) / d.Speed(coins, ticks))
	if interval < floor {
		return floor
	}
	return interval
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
