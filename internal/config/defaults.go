package config

import (
	_ "embed"
)

//go:embed defaults/adventure.yaml
var defaultAdventureYAML []byte

// DefaultAdventureConfig returns the hardcoded adventure configuration.
// It matches defaults/adventure.yaml and is used when that cannot be parsed.
func DefaultAdventureConfig() AdventureConfig {
	return AdventureConfig{
		Gameplay: AdventureGameplay{
			Lives:        3,
			CoinAttempts: 100,
			CoinSeed:     1,
			RevealRadius: 5,
		},
		Enemies: AdventureEnemies{
			PatrolIntervalMS: 300,
			MinIntervalMS:    120,
		},
		Display: AdventureDisplay{
			CellSize:  10,
			FrameRate: 30,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "coins",
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultAdventureYAML
}
