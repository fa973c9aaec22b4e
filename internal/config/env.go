package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ApplyEnv overrides configuration fields from ADVENTURE_* environment
// variables. Unset variables leave the field untouched.
func ApplyEnv(target *AdventureConfig) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
