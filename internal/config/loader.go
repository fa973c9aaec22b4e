package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const adventureFile = "adventure.yaml"

// LoadAdventure loads the adventure configuration and applies environment
// overrides.
// Search order: customPath -> ~/.adventure/configs/adventure.yaml ->
// ./configs/adventure.yaml -> embedded default
func LoadAdventure(customPath string) (AdventureConfig, error) {
	cfg, err := loadAdventureFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.normalize()
	return cfg, nil
}

func loadAdventureFile(customPath string) (AdventureConfig, error) {
	// Missing keys keep their default values
	cfg := DefaultAdventureConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(adventureFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultAdventureConfig()
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", adventureFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultAdventureConfig()
	}

	if err := yaml.Unmarshal(defaultAdventureYAML, &cfg); err != nil {
		return DefaultAdventureConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".adventure", "configs", filename)
}

// normalize replaces unusable values with defaults.
func (c *AdventureConfig) normalize() {
	def := DefaultAdventureConfig()
	if c.Gameplay.Lives <= 0 {
		c.Gameplay.Lives = def.Gameplay.Lives
	}
	if c.Gameplay.CoinAttempts < 0 {
		c.Gameplay.CoinAttempts = 0
	}
	if c.Gameplay.RevealRadius < 0 {
		c.Gameplay.RevealRadius = def.Gameplay.RevealRadius
	}
	if c.Enemies.PatrolIntervalMS <= 0 {
		c.Enemies.PatrolIntervalMS = def.Enemies.PatrolIntervalMS
	}
	if c.Enemies.MinIntervalMS <= 0 || c.Enemies.MinIntervalMS > c.Enemies.PatrolIntervalMS {
		c.Enemies.MinIntervalMS = c.Enemies.PatrolIntervalMS
	}
	if c.Display.CellSize <= 0 {
		c.Display.CellSize = def.Display.CellSize
	}
	if c.Display.FrameRate <= 0 {
		c.Display.FrameRate = def.Display.FrameRate
	}
}

// ApplyAdventurePreset modifies the config based on a difficulty preset.
func ApplyAdventurePreset(cfg *AdventureConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Enemies.PatrolIntervalMS = 400
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Enemies.PatrolIntervalMS = 200
	}
	cfg.normalize()
}
