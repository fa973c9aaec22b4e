package world

import "github.com/vovakirdan/tui-adventure/internal/core"

// Collides reports whether two pixel positions are within one cell of each
// other on both axes.
func Collides(a, b Pixel, cellSize int) bool {
	return core.Abs(a.X-b.X) <= cellSize && core.Abs(a.Y-b.Y) <= cellSize
}

// ProximityResult is the outcome of one proximity check.
type ProximityResult struct {
	Collided bool
	Lives    int
	GameOver bool // True only on the check that took the last life
}

// CheckProximity projects enemy and player onto pixel space using the current
// cell size and takes a life on overlap. It fires on every overlapping check,
// not just the first one.
func CheckProximity(enemy, player Coord, cellSize int, v *Vitals) ProximityResult {
	if !Collides(enemy.Pixel(cellSize), player.Pixel(cellSize), cellSize) {
		return ProximityResult{Lives: v.Lives()}
	}
	lives, over := v.Hit()
	return ProximityResult{Collided: true, Lives: lives, GameOver: over}
}
