package world

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-adventure/internal/core"
)

// DefaultRevealRadius is the half-width of the square revealed around the player.
const DefaultRevealRadius = 5

// Fog tracks which cells the player has seen. Cells only ever go from hidden
// to revealed.
type Fog struct {
	mu       sync.RWMutex
	revealed [][]bool
	width    int
	height   int
	count    int
}

// NewFog creates a fully hidden mask of the given dimensions.
func NewFog(width, height int) *Fog {
	revealed := make([][]bool, height)
	for y := range revealed {
		revealed[y] = make([]bool, width)
	}
	return &Fog{revealed: revealed, width: width, height: height}
}

// Reveal marks every cell within Chebyshev distance radius of center,
// clipped to the mask. Returns the number of newly revealed cells.
func (f *Fog) Reveal(center Coord, radius int) int {
	if radius < 0 || f.width == 0 || f.height == 0 {
		return 0
	}
	if center.X+radius < 0 || center.Y+radius < 0 || center.X-radius >= f.width || center.Y-radius >= f.height {
		return 0
	}
	minX := core.Clamp(center.X-radius, 0, f.width-1)
	maxX := core.Clamp(center.X+radius, 0, f.width-1)
	minY := core.Clamp(center.Y-radius, 0, f.height-1)
	maxY := core.Clamp(center.Y+radius, 0, f.height-1)

	f.mu.Lock()
	defer f.mu.Unlock()

	added := 0
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !f.revealed[y][x] {
				f.revealed[y][x] = true
				added++
			}
		}
	}
	f.count += added
	return added
}

// IsRevealed reports whether (x, y) has been seen.
func (f *Fog) IsRevealed(x, y int) (bool, error) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return false, fmt.Errorf("fog (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.revealed[y][x], nil
}

// Count returns the number of revealed cells.
func (f *Fog) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.count
}

// Mask returns a copy of the revealed matrix.
func (f *Fog) Mask() [][]bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([][]bool, f.height)
	for y, row := range f.revealed {
		out[y] = append([]bool(nil), row...)
	}
	return out
}
